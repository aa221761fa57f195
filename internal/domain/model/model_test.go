package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"unset to approved", Status(""), StatusApproved, true},
		{"approved stays", StatusApproved, StatusRejected, false},
		{"rejected stays", StatusRejected, StatusApproved, false},
		{"cannot go back to pending", StatusApproved, StatusPending, false},
		{"pending to unset is not a transition", StatusPending, Status(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestQuestionWire_Normalize_PascalCase(t *testing.T) {
	// encoding/json matches names case-insensitively, so the upstream's
	// PascalCase variants decode into the same wire struct.
	q, answers, hasAnswers, err := DecodeQuestionDetail([]byte(
		`{"Id":"q1","Title":"T","Text":"body","Author":"ann","CreatedAt":"2026-01-02T10:00:00Z","Status":"Approved","Images":["/uploads/a.png"]}`,
	))
	require.NoError(t, err)
	assert.False(t, hasAnswers)
	assert.Nil(t, answers)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "T", q.Title)
	assert.Equal(t, StatusApproved, q.Status)
	assert.Equal(t, time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC), q.CreatedAt)
	assert.Equal(t, []string{"/uploads/a.png"}, q.Images)
}

func TestDecodeQuestionDetail_Envelope(t *testing.T) {
	q, answers, hasAnswers, err := DecodeQuestionDetail([]byte(
		`{"question":{"id":"q2","title":"T2"},"answers":[{"id":"a1","text":"hi","status":"Pending"}]}`,
	))
	require.NoError(t, err)
	assert.True(t, hasAnswers)
	assert.Equal(t, "q2", q.ID)
	require.Len(t, answers, 1)
	assert.Equal(t, "a1", answers[0].ID)
	assert.Equal(t, StatusPending, answers[0].Status)
}

func TestDecodeQuestionDetail_EnvelopeWithEmptyAnswers(t *testing.T) {
	_, answers, hasAnswers, err := DecodeQuestionDetail([]byte(`{"question":{"id":"q3"},"answers":[]}`))
	require.NoError(t, err)
	assert.True(t, hasAnswers)
	assert.Empty(t, answers)
}

func TestQuestionPageWire_Normalize_TotalFallback(t *testing.T) {
	page := QuestionPageWire{Items: []QuestionWire{{ID: "1"}, {ID: "2"}}}.Normalize()
	assert.Equal(t, 2, page.Total)

	page = QuestionPageWire{Items: []QuestionWire{{ID: "1"}}, Total: 40}.Normalize()
	assert.Equal(t, 40, page.Total)
}

func TestParseWireTime_Lenient(t *testing.T) {
	assert.True(t, parseWireTime("").IsZero())
	assert.True(t, parseWireTime("not-a-time").IsZero())
	assert.False(t, parseWireTime("2026-01-02T10:00:00").IsZero(), "timezone-less timestamps still parse")
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative with slash", "/uploads/a.png", "http://localhost:5108/uploads/a.png"},
		{"relative without slash", "uploads/a.png", "http://localhost:5108/uploads/a.png"},
		{"absolute passes through", "https://cdn/x.png", "https://cdn/x.png"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageURL("http://localhost:5108", tt.path))
		})
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", Snippet("short", 10))
	assert.Equal(t, "lon…", Snippet("longer text", 3))
}
