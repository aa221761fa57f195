package model

import (
	"encoding/json"
	"time"
)

// Wire shapes for upstream API payloads. The upstream is inconsistent about
// field casing ("id" vs "Id" vs "ID"); encoding/json matches member names
// case-insensitively, so a single lower-case tag accepts every variant.

// QuestionWire is the upstream representation of a question.
type QuestionWire struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Author    string   `json:"author"`
	CreatedAt string   `json:"createdAt"`
	Status    string   `json:"status"`
	Images    []string `json:"images"`
}

// AnswerWire is the upstream representation of an answer.
type AnswerWire struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Author    string   `json:"author"`
	CreatedAt string   `json:"createdAt"`
	Status    string   `json:"status"`
	Images    []string `json:"images"`
}

// QuestionPageWire is the upstream list envelope.
type QuestionPageWire struct {
	Items []QuestionWire `json:"items"`
	Total int            `json:"total"`
}

// QuestionDetailWire accepts both detail shapes the upstream emits:
// {"question": {...}, "answers": [...]} or a bare question object.
type QuestionDetailWire struct {
	Question *QuestionWire `json:"question"`
	Answers  []AnswerWire  `json:"answers"`

	// Bare-question fields; populated when no envelope is present.
	QuestionWire
}

// Normalize converts a wire question into the domain shape.
func (w QuestionWire) Normalize() Question {
	return Question{
		ID:        w.ID,
		Title:     w.Title,
		Text:      w.Text,
		Author:    w.Author,
		CreatedAt: parseWireTime(w.CreatedAt),
		Status:    Status(w.Status),
		Images:    w.Images,
	}
}

// Normalize converts a wire answer into the domain shape.
func (w AnswerWire) Normalize() Answer {
	return Answer{
		ID:        w.ID,
		Text:      w.Text,
		Author:    w.Author,
		CreatedAt: parseWireTime(w.CreatedAt),
		Status:    Status(w.Status),
		Images:    w.Images,
	}
}

// Normalize converts a wire page into the domain shape. A missing total
// falls back to the item count, matching what the upstream means when it
// omits the field.
func (w QuestionPageWire) Normalize() QuestionPage {
	items := make([]Question, 0, len(w.Items))
	for _, q := range w.Items {
		items = append(items, q.Normalize())
	}
	total := w.Total
	if total == 0 {
		total = len(items)
	}
	return QuestionPage{Items: items, Total: total}
}

// DecodeQuestionDetail decodes a detail payload in either shape and returns
// the question plus any inline answers. HasAnswers reports whether the
// payload carried answers at all (an enveloped response with an empty list
// still counts; a bare question does not).
func DecodeQuestionDetail(data []byte) (Question, []Answer, bool, error) {
	var w QuestionDetailWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Question{}, nil, false, err
	}
	if w.Question != nil {
		answers := make([]Answer, 0, len(w.Answers))
		for _, a := range w.Answers {
			answers = append(answers, a.Normalize())
		}
		return w.Question.Normalize(), answers, true, nil
	}
	return w.QuestionWire.Normalize(), nil, false, nil
}

func parseWireTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
