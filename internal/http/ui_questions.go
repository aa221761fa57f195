package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/moderation"
	"github.com/doconnect/doconnect-web/internal/service"
)

// Index redirects the root path to the question list.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/questions", http.StatusFound)
}

// QuestionsList renders the question list with search and pagination.
// GET /questions?q=<search>&page=<n>.
// The search box issues debounced htmx requests targeting the list
// fragment; superseded responses are dropped with 204 so a slow earlier
// search never overwrites newer results.
func (h *UIHandlers) QuestionsList(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}

	// Full page loads re-check the advisory admin flag against the
	// upstream; the remote answer overwrites the local one either way.
	if !WantsPartial(r) {
		if refreshed, err := h.Auth.RefreshAdmin(r.Context(), sess); err == nil {
			sess = refreshed
			ctx := SetSessionInContext(r.Context(), sess)
			r = r.WithContext(ctx)
		}
	}

	query := model.ListQuery{
		Search:   r.URL.Query().Get("q"),
		Page:     parseIntQuery(r, "page", 1),
		PageSize: h.Questions.PageSize(),
	}

	page, err := h.Questions.List(r.Context(), sess, query)
	if errors.Is(err, service.ErrStale) {
		// A newer search started before this response arrived.
		HTMX(w).NoSwap()
		return
	}

	builder := NewTemplateData(r, PageMeta{
		Title:       "Questions - DoConnect",
		PageTitle:   "Questions",
		CurrentPage: PageQuestions,
	}).
		With("Search", query.Search).
		With("DebounceMS", h.UI.SearchDebounceMS).
		With("SnippetLength", h.UI.SnippetLength).
		WithNotice(noticeFromQuery(r))

	if err != nil {
		h.logger().Error("question list fetch failed", "error", err)
		builder.WithError("Could not load questions. Please try again.")
		builder.With("Questions", []model.Question{})
	} else {
		builder.With("Questions", page.Items)
		builder.WithPagination(PaginationData{
			Page:       query.Page,
			PageSize:   query.PageSize,
			TotalCount: page.Total,
			BasePath:   "/questions",
		})
	}

	data := builder.Build()

	// Search and pagination swaps replace only the list fragment.
	if WantsPartial(r) && HXTarget(r) == "question-list" {
		SetHXPushURL(w, buildPageURL("/questions", r.URL.Query(), query.Page))
		if renderErr := h.T.RenderNamed(w, "question-list", data); renderErr != nil {
			h.logAndRenderTemplateError(w, r, renderErr, "question list fragment")
		}
		return
	}

	h.renderPage(w, r, data)
}

// QuestionDelete removes a question through the elevated endpoint.
// POST /questions/{id}/delete with a confirm field; the form is only
// rendered for admins and the upstream still enforces authorization.
func (h *UIHandlers) QuestionDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	confirmed := r.FormValue("confirm") == "true"
	err := h.Moderation.DeleteQuestion(r.Context(), sess, id, confirmed)
	switch {
	case err == nil:
		// List-row deletes swap the fragment in place; the detail-page
		// form takes the redirect.
		if IsHTMX(r) && HXTarget(r) == "question-list" {
			h.renderListAfterDelete(w, r, sess, id)
			return
		}
		redirectWithNotice(w, r, "/questions", "Question deleted.")
	case errors.Is(err, moderation.ErrConfirmationRequired):
		redirectWithNotice(w, r, "/questions/"+id, "Deletion must be confirmed.")
	case apperrors.IsUnauthorized(err):
		// The upstream no longer considers this user an admin. Clear the
		// advisory flag quietly and land back on the list; no failure
		// notice, the question simply stays.
		if _, setErr := h.Auth.SetAdmin(r.Context(), sess, false); setErr != nil {
			h.logger().Error("clearing admin flag failed", "error", setErr)
		}
		redirectAway(w, r, "/questions")
	default:
		h.logger().Error("question delete failed", "question_id", id, "error", err)
		redirectWithNotice(w, r, "/questions/"+id, "Could not delete the question. Please try again.")
	}
}

// renderListAfterDelete re-renders the list fragment with the deleted
// question spliced out. The upstream copy is already gone, but the
// refetched page can still carry the question for a moment; the splice
// makes the removal immediate either way.
func (h *UIHandlers) renderListAfterDelete(w http.ResponseWriter, r *http.Request, sess domainauth.Session, id string) {
	query := listQueryFromCurrentURL(r, h.Questions.PageSize())

	page, err := h.Questions.List(r.Context(), sess, query)
	if err != nil {
		// Fragment state is unknown; fall back to a full reload with the
		// notice instead of leaving a stale row behind.
		HTMX(w).Redirect("/questions?notice=" + url.QueryEscape("Question deleted."))
		return
	}
	moderation.RemoveFromPage(&page, id)

	data := NewTemplateData(r, PageMeta{CurrentPage: PageQuestions}).
		With("Search", query.Search).
		With("SnippetLength", h.UI.SnippetLength).
		With("Questions", page.Items).
		WithPagination(PaginationData{
			Page:       query.Page,
			PageSize:   query.PageSize,
			TotalCount: page.Total,
			BasePath:   "/questions",
		}).
		Build()

	triggerToast(w, "Question deleted.", "success")
	if renderErr := h.T.RenderNamed(w, "question-list", data); renderErr != nil {
		h.logAndRenderTemplateError(w, r, renderErr, "question list fragment")
	}
}

// listQueryFromCurrentURL recovers the search and page the browser is on
// from the Hx-Current-Url header htmx sends with fragment requests.
func listQueryFromCurrentURL(r *http.Request, pageSize int) model.ListQuery {
	query := model.ListQuery{Page: 1, PageSize: pageSize}
	current, err := url.Parse(r.Header.Get("Hx-Current-Url"))
	if err != nil || current == nil {
		return query
	}
	query.Search = current.Query().Get("q")
	if p, convErr := strconv.Atoi(current.Query().Get("page")); convErr == nil && p > 0 {
		query.Page = p
	}
	return query
}
