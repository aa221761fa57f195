package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/doconnect/doconnect-web/config"
	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	"github.com/doconnect/doconnect-web/internal/moderation"
	"github.com/doconnect/doconnect-web/internal/ports"
	"github.com/doconnect/doconnect-web/internal/service"
)

// AuthUIService is the auth surface the UI needs.
type AuthUIService interface {
	Login(ctx context.Context, input ports.LoginInput) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	RefreshAdmin(ctx context.Context, session domainauth.Session) (domainauth.Session, error)
	SetAdmin(ctx context.Context, session domainauth.Session, isAdmin bool) (domainauth.Session, error)
}

// QuestionsUIService is the question read surface the UI needs.
type QuestionsUIService interface {
	List(ctx context.Context, sess domainauth.Session, query model.ListQuery) (model.QuestionPage, error)
	Get(ctx context.Context, sess domainauth.Session, id string) (model.Question, []model.Answer, error)
	PageSize() int
	ForgetSession(sessionID string)
}

// ModerationUIService is the submission/moderation surface the UI needs.
type ModerationUIService interface {
	PostAnswer(ctx context.Context, sess domainauth.Session, questionID string, draft model.AnswerDraft) (model.Answer, error)
	AskQuestion(ctx context.Context, sess domainauth.Session, draft model.QuestionDraft) (model.Question, error)
	DeleteQuestion(ctx context.Context, sess domainauth.Session, id string, confirmed bool) error
	LoadPending(ctx context.Context, sess domainauth.Session) error
	Dashboard(sessionID string) moderation.DashboardView
	Forget(sessionID string)
	Transition(ctx context.Context, sess domainauth.Session, kind moderation.Kind, id string, decision moderation.Decision) error
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthUIService       = (*service.AuthService)(nil)
	_ QuestionsUIService  = (*service.QuestionService)(nil)
	_ ModerationUIService = (*moderation.Engine)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	Auth         AuthUIService
	Questions    QuestionsUIService
	Moderation   ModerationUIService
	UI           config.UIConfig
	CookieDomain string
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// renderPage renders a page with proper HTMX partial support: full layout
// for regular navigation, content-only for htmx swaps.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Hint client JS to update nav active state based on current path
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	currentPage, _ := data["CurrentPage"].(string)
	title, _ := data["Title"].(string)

	// Include a <title> element so htmx updates document.title on partial swaps
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}

	if err := h.T.RenderNamed(w, ContentTemplateFor(currentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API-style requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errNotFoundResponse,
		})
		return
	}

	_, isAuthenticated := SessionFromContext(r.Context())
	data := map[string]any{
		"Title":           "Page Not Found - DoConnect",
		"Code":            "404",
		"Message":         "The page you're looking for doesn't exist.",
		"IsAuthenticated": isAuthenticated,
		"ShowLogin":       !isAuthenticated,
		"RedirectURI":     r.URL.RequestURI(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T == nil || h.T.RenderError(w, r, data) != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}

var errNotFoundResponse = &notFoundResponseError{}

type notFoundResponseError struct{}

func (*notFoundResponseError) Error() string { return "not found" }

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// redirectWithNotice redirects to path with a one-shot notice query param.
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	if notice != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + "notice=" + url.QueryEscape(notice)
	}
	if IsHTMX(r) {
		HTMX(w).Redirect(path)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// noticeFromQuery returns the transient notice carried in the query string.
func noticeFromQuery(r *http.Request) string {
	return r.URL.Query().Get("notice")
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div style="padding: 20px; background: #fee; border: 2px solid #c33; border-radius: 4px; margin: 20px; font-family: monospace;">
				<h2 style="color: #c33; margin-top: 0;">Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<pre style="background: #fff; padding: 10px; border: 1px solid #ccc; overflow-x: auto;">` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
