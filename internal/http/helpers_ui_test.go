package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/doconnect/doconnect-web/config"
	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	"github.com/doconnect/doconnect-web/internal/moderation"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// Shared hand-written doubles for the UI service interfaces. Function
// fields override the defaults per test; call counters are safe for
// concurrent use.

type fakeAuth struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	LoginFunc        func(ctx context.Context, input ports.LoginInput) (domainauth.Session, error)
	RefreshAdminFunc func(ctx context.Context, session domainauth.Session) (domainauth.Session, error)

	refreshCalls  int
	setAdminCalls []bool
}

var _ AuthUIService = (*fakeAuth)(nil)

func newFakeAuth(sessions ...domainauth.Session) *fakeAuth {
	f := &fakeAuth{sessions: make(map[string]domainauth.Session)}
	for _, s := range sessions {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *fakeAuth) Login(ctx context.Context, input ports.LoginInput) (domainauth.Session, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, input)
	}
	return domainauth.Session{}, errors.New("login not configured")
}

func (f *fakeAuth) GetSession(_ context.Context, sessionID string) (domainauth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, ok := f.sessions[sessionID]
	if !ok {
		return domainauth.Session{}, errors.New("session not found")
	}
	return sess, nil
}

func (f *fakeAuth) Logout(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeAuth) RefreshAdmin(ctx context.Context, session domainauth.Session) (domainauth.Session, error) {
	f.mu.Lock()
	f.refreshCalls++
	f.mu.Unlock()
	if f.RefreshAdminFunc != nil {
		return f.RefreshAdminFunc(ctx, session)
	}
	return session, nil
}

func (f *fakeAuth) SetAdmin(_ context.Context, session domainauth.Session, isAdmin bool) (domainauth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setAdminCalls = append(f.setAdminCalls, isAdmin)
	session.IsAdmin = isAdmin
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeAuth) RefreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

func (f *fakeAuth) SetAdminCalls() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.setAdminCalls...)
}

type fakeQuestions struct {
	Page     model.QuestionPage
	ListErr  error
	Question model.Question
	Answers  []model.Answer
	GetErr   error
	Size     int

	mu        sync.Mutex
	lastQuery model.ListQuery
	forgotten []string
}

var _ QuestionsUIService = (*fakeQuestions)(nil)

func (f *fakeQuestions) List(_ context.Context, _ domainauth.Session, query model.ListQuery) (model.QuestionPage, error) {
	f.mu.Lock()
	f.lastQuery = query
	f.mu.Unlock()
	if f.ListErr != nil {
		return model.QuestionPage{}, f.ListErr
	}
	return f.Page, nil
}

func (f *fakeQuestions) Get(_ context.Context, _ domainauth.Session, _ string) (model.Question, []model.Answer, error) {
	if f.GetErr != nil {
		return model.Question{}, nil, f.GetErr
	}
	return f.Question, f.Answers, nil
}

func (f *fakeQuestions) PageSize() int {
	if f.Size > 0 {
		return f.Size
	}
	return 5
}

func (f *fakeQuestions) ForgetSession(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgotten = append(f.forgotten, sessionID)
}

func (f *fakeQuestions) LastQuery() model.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

type fakeModeration struct {
	PostAnswerFunc  func(ctx context.Context, sess domainauth.Session, questionID string, draft model.AnswerDraft) (model.Answer, error)
	AskQuestionFunc func(ctx context.Context, sess domainauth.Session, draft model.QuestionDraft) (model.Question, error)
	DeleteErr       error
	LoadPendingErr  error
	View            moderation.DashboardView
	TransitionErr   error

	mu          sync.Mutex
	deleteCalls []bool
	forgotten   []string
	transitions []string
}

var _ ModerationUIService = (*fakeModeration)(nil)

func (f *fakeModeration) PostAnswer(ctx context.Context, sess domainauth.Session, questionID string, draft model.AnswerDraft) (model.Answer, error) {
	if f.PostAnswerFunc != nil {
		return f.PostAnswerFunc(ctx, sess, questionID, draft)
	}
	return model.Answer{ID: "a-new", Text: draft.Text, Author: "You", Status: model.StatusPending}, nil
}

func (f *fakeModeration) AskQuestion(ctx context.Context, sess domainauth.Session, draft model.QuestionDraft) (model.Question, error) {
	if f.AskQuestionFunc != nil {
		return f.AskQuestionFunc(ctx, sess, draft)
	}
	return model.Question{ID: "q-new", Title: draft.Title, Text: draft.Text, Status: model.StatusPending}, nil
}

func (f *fakeModeration) DeleteQuestion(_ context.Context, _ domainauth.Session, _ string, confirmed bool) error {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, confirmed)
	f.mu.Unlock()
	if !confirmed {
		return moderation.ErrConfirmationRequired
	}
	return f.DeleteErr
}

func (f *fakeModeration) LoadPending(_ context.Context, _ domainauth.Session) error {
	return f.LoadPendingErr
}

func (f *fakeModeration) Dashboard(_ string) moderation.DashboardView {
	return f.View
}

func (f *fakeModeration) Forget(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgotten = append(f.forgotten, sessionID)
}

func (f *fakeModeration) Transition(_ context.Context, _ domainauth.Session, kind moderation.Kind, id string, decision moderation.Decision) error {
	f.mu.Lock()
	f.transitions = append(f.transitions, string(kind)+"/"+id+"/"+string(decision))
	f.mu.Unlock()
	return f.TransitionErr
}

func (f *fakeModeration) Transitions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.transitions...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRenderer parses the real templates from disk.
func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	require.NoError(t, err)
	return tr
}

// uiTestEnv bundles handlers and their doubles for handler-level tests.
type uiTestEnv struct {
	h          *UIHandlers
	auth       *fakeAuth
	questions  *fakeQuestions
	moderation *fakeModeration
}

func newUITestEnv(t *testing.T) *uiTestEnv {
	t.Helper()
	env := &uiTestEnv{
		auth:       newFakeAuth(),
		questions:  &fakeQuestions{},
		moderation: &fakeModeration{},
	}
	env.h = &UIHandlers{
		T:          newTestRenderer(t),
		Auth:       env.auth,
		Questions:  env.questions,
		Moderation: env.moderation,
		UI:         testUIConfig(),
	}
	return env
}

func testUIConfig() config.UIConfig {
	cfg := config.UIConfig{}
	cfg.Sanitize()
	return cfg
}

func testSession(isAdmin bool) domainauth.Session {
	return domainauth.Session{
		ID:        "sess-1",
		Username:  "casey",
		Token:     "token-1",
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// withSession returns the request with a session and browser flag already
// in context, as the middleware chain would leave them.
func withSession(r *http.Request, sess domainauth.Session) *http.Request {
	ctx := SetSessionInContext(r.Context(), sess)
	ctx = context.WithValue(ctx, browserRequestKey{}, true)
	return r.WithContext(ctx)
}

func newHTMXRequest(method, url, target string) *http.Request {
	r := httptest.NewRequest(method, url, nil)
	r.Header.Set("Hx-Request", "true")
	if target != "" {
		r.Header.Set("Hx-Target", target)
	}
	return r
}
