package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/moderation"
)

// Dashboard renders the moderation dashboard with both pending queues.
// GET /admin.
// An auth rejection while loading means the advisory admin flag is stale;
// it is cleared quietly and the user lands back on the question list.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}

	if err := h.Moderation.LoadPending(r.Context(), sess); err != nil {
		if apperrors.IsUnauthorized(err) {
			if _, setErr := h.Auth.SetAdmin(r.Context(), sess, false); setErr != nil {
				h.logger().Error("clearing admin flag failed", "error", setErr)
			}
			redirectAway(w, r, "/questions")
			return
		}
		h.logger().Error("pending load failed", "error", err)
		h.renderPage(w, r, h.dashboardData(r, moderation.DashboardView{}).
			WithError("Could not load pending items. Please try again.").
			Build())
		return
	}

	view := h.Moderation.Dashboard(sess.ID)
	h.renderPage(w, r, h.dashboardData(r, view).Build())
}

// Moderate applies an approve/reject decision to a pending item.
// POST /admin/{kind}/{id}/{action}.
// The dashboard state flips optimistically inside the workflow engine; a
// failed remote call reverts it and the re-rendered queue shows the revert.
func (h *UIHandlers) Moderate(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}

	kind, kindOK := moderation.KindFromString(r.PathValue("kind"))
	decision, decisionOK := moderation.DecisionFromString(r.PathValue("action"))
	id := r.PathValue("id")
	if !kindOK || !decisionOK || id == "" {
		h.NotFound(w, r)
		return
	}

	err := h.Moderation.Transition(r.Context(), sess, kind, id, decision)
	switch {
	case err == nil:
		if !IsHTMX(r) {
			redirectWithNotice(w, r, "/admin", decisionNotice(kind, decision))
			return
		}
		triggerToast(w, decisionNotice(kind, decision), "success")
	case errors.Is(err, moderation.ErrInFlight):
		triggerToast(w, "That decision is already in progress.", "info")
	case apperrors.IsUnauthorized(err):
		if _, setErr := h.Auth.SetAdmin(r.Context(), sess, false); setErr != nil {
			h.logger().Error("clearing admin flag failed", "error", setErr)
		}
		redirectAway(w, r, "/questions")
		return
	case apperrors.IsValidation(err):
		triggerToast(w, "That item was already decided.", "info")
	case apperrors.IsNotFound(err):
		// Dashboard state is gone (restart or never loaded); reload it.
		redirectAway(w, r, "/admin")
		return
	default:
		h.logger().Error("moderation decision failed",
			"kind", string(kind), "id", id, "decision", string(decision), "error", err)
		triggerToast(w, "Could not apply the decision. Please try again.", "error")
	}

	if !IsHTMX(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	view := h.Moderation.Dashboard(sess.ID)
	data := h.dashboardData(r, view).Build()
	if renderErr := h.T.RenderNamed(w, "dashboard-queues", data); renderErr != nil {
		h.logAndRenderTemplateError(w, r, renderErr, "dashboard queues fragment")
	}
}

// decisionNotice phrases the confirmation shown after a successful
// approve or reject.
func decisionNotice(kind moderation.Kind, decision moderation.Decision) string {
	noun := "Question"
	if kind == moderation.KindAnswer {
		noun = "Answer"
	}
	verb := "approved"
	if decision == moderation.DecisionReject {
		verb = "rejected"
	}
	return noun + " " + verb + "."
}

func (h *UIHandlers) dashboardData(r *http.Request, view moderation.DashboardView) *TemplateDataBuilder {
	return NewTemplateData(r, PageMeta{
		Title:       "Moderation - DoConnect",
		PageTitle:   "Moderation",
		CurrentPage: PageDashboard,
	}).
		With("PendingQuestions", view.Questions).
		With("PendingAnswers", view.Answers).
		WithNotice(noticeFromQuery(r))
}
