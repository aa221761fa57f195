package doconnect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/ports"
)

const testCred = domainauth.Credential("test-token")

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestClient_SendsBearerHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	}))

	_, err := client.Questions().List(context.Background(), testCred, model.ListQuery{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_List_QueryParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[{"id":"q1","title":"T"}],"total":7}`))
	}))

	page, err := client.Questions().List(context.Background(), testCred, model.ListQuery{
		Search:   "widget",
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "q=widget")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "pageSize=10")
	assert.Equal(t, 7, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "q1", page.Items[0].ID)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"401 is unauthorized", http.StatusUnauthorized, apperrors.IsUnauthorized},
		{"403 is unauthorized", http.StatusForbidden, apperrors.IsUnauthorized},
		{"404 is not found", http.StatusNotFound, apperrors.IsNotFound},
		{"500 is upstream", http.StatusInternalServerError, apperrors.IsUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			_, _, _, err := client.Questions().Get(context.Background(), testCred, "q1")
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestClient_NetworkFailureIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse all connections

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Questions().Answers(context.Background(), testCred, "q1")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestClient_PostAnswer_MultipartForm(t *testing.T) {
	var (
		gotPath string
		gotText string
		gotFile []byte
	)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotText = r.FormValue("Text")
		file, _, err := r.FormFile("Files")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		gotFile = buf[:n]
		_, _ = w.Write([]byte(`{"id":"a9","text":"hello","status":"Pending"}`))
	}))

	ans, err := client.Questions().PostAnswer(context.Background(), testCred, "q1", model.AnswerDraft{
		Text:  "hello",
		Files: []model.Upload{{Name: "pic.png", ContentType: "image/png", Content: []byte("png-bytes")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/questions/q1/answers", gotPath)
	assert.Equal(t, "hello", gotText)
	assert.Equal(t, []byte("png-bytes"), gotFile)
	assert.Equal(t, "a9", ans.ID)
	assert.Equal(t, model.StatusPending, ans.Status)
}

func TestAdminClient_CreateQuestion_Path(t *testing.T) {
	var gotPath, gotTitle string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotTitle = r.FormValue("Title")
		_, _ = w.Write([]byte(`{"id":"q5","title":"New","status":"Approved"}`))
	}))

	q, err := client.Admin().CreateQuestion(context.Background(), testCred, model.QuestionDraft{Title: "New", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/questions", gotPath)
	assert.Equal(t, "New", gotTitle)
	assert.Equal(t, model.StatusApproved, q.Status)
}

func TestAdminClient_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		call     func(ports.AdminAPI) error
		wantPath string
	}{
		{"approve question", func(a ports.AdminAPI) error {
			return a.ApproveQuestion(context.Background(), testCred, "q1")
		}, "/admin/questions/q1/approve"},
		{"reject question", func(a ports.AdminAPI) error {
			return a.RejectQuestion(context.Background(), testCred, "q1")
		}, "/admin/questions/q1/reject"},
		{"approve answer", func(a ports.AdminAPI) error {
			return a.ApproveAnswer(context.Background(), testCred, "a1")
		}, "/admin/answers/a1/approve"},
		{"reject answer", func(a ports.AdminAPI) error {
			return a.RejectAnswer(context.Background(), testCred, "a1")
		}, "/admin/answers/a1/reject"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotMethod string
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotMethod = r.Method
				w.WriteHeader(http.StatusOK)
			}))
			require.NoError(t, tt.call(client.Admin()))
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, http.MethodPost, gotMethod)
		})
	}
}

func TestAdminClient_DeleteQuestion(t *testing.T) {
	var gotPath, gotMethod string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.Admin().DeleteQuestion(context.Background(), testCred, "q1"))
	assert.Equal(t, "/admin/questions/q1", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestIdentityClient_Login_TokenKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domainauth.Credential
	}{
		{"token key", `{"token":"tok-1"}`, "tok-1"},
		{"accessToken key", `{"accessToken":"tok-2"}`, "tok-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/login", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			}))
			cred, err := client.Identity().Login(context.Background(), ports.LoginInput{UsernameOrEmail: "u", Password: "p"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cred)
		})
	}
}

func TestIdentityClient_Login_EmptyTokenIsError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	_, err := client.Identity().Login(context.Background(), ports.LoginInput{UsernameOrEmail: "u", Password: "p"})
	assert.Error(t, err)
}

func TestIdentityClient_Me(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		_, _ = w.Write([]byte(`{"role":"Admin"}`))
	}))
	id, err := client.Identity().Me(context.Background(), testCred)
	require.NoError(t, err)
	assert.Equal(t, "Admin", id.Role)
}

func TestAdminClient_PendingQueues(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/questions/pending":
			_, _ = w.Write([]byte(`[{"Id":"q1","Title":"A"},{"Id":"q2","Title":"B"}]`))
		case "/admin/answers/pending":
			_, _ = w.Write([]byte(`[{"Id":"a1","Text":"x"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	questions, err := client.Admin().PendingQuestions(context.Background(), testCred)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID, "server order preserved")

	answers, err := client.Admin().PendingAnswers(context.Background(), testCred)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "a1", answers[0].ID)
}
