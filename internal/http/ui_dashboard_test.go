package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doconnect/doconnect-web/internal/domain/model"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/moderation"
)

func pendingView() moderation.DashboardView {
	return moderation.DashboardView{
		Questions: []moderation.PendingQuestion{
			{Question: model.Question{ID: "pq1", Title: "Pending question", Text: "body"}},
		},
		Answers: []moderation.PendingAnswer{
			{Answer: model.Answer{ID: "pa1", Text: "Pending answer", Author: "Sam"}},
		},
	}
}

func TestDashboard_RendersBothQueues(t *testing.T) {
	env := newUITestEnv(t)
	env.moderation.View = pendingView()

	rr := httptest.NewRecorder()
	env.h.Dashboard(rr, withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), testSession(true)))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Pending question")
	assert.Contains(t, body, "Pending answer")
	assert.Contains(t, body, "/admin/questions/pq1/approve")
	assert.Contains(t, body, "/admin/answers/pa1/reject")
}

func TestDashboard_Unauthorized_ClearsFlagAndRedirects(t *testing.T) {
	env := newUITestEnv(t)
	env.moderation.LoadPendingErr = apperrors.Unauthorized("forbidden")

	rr := httptest.NewRecorder()
	env.h.Dashboard(rr, withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), testSession(true)))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/questions", rr.Header().Get("Location"))
	assert.Equal(t, []bool{false}, env.auth.SetAdminCalls())
}

func TestDashboard_TransientLoadFailure_RendersErrorBanner(t *testing.T) {
	env := newUITestEnv(t)
	env.moderation.LoadPendingErr = apperrors.Upstream("api down")

	rr := httptest.NewRecorder()
	env.h.Dashboard(rr, withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), testSession(true)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Could not load pending items")
}

func moderateRequest(kind, id, action string, htmx bool) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/admin/"+kind+"/"+id+"/"+action, nil)
	r.SetPathValue("kind", kind)
	r.SetPathValue("id", id)
	r.SetPathValue("action", action)
	if htmx {
		r.Header.Set("Hx-Request", "true")
		r.Header.Set("Hx-Target", "dashboard-queues")
	}
	return r
}

func TestModerate_HTMX_RendersQueuesFragment(t *testing.T) {
	env := newUITestEnv(t)
	view := pendingView()
	view.Questions[0].Status = model.StatusApproved
	view.Questions[0].Confirmed = model.StatusApproved
	env.moderation.View = view

	rr := httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("questions", "pq1", "approve", true), testSession(true)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"questions/pq1/approve"}, env.moderation.Transitions())
	body := rr.Body.String()
	assert.Contains(t, body, `id="dashboard-queues"`)
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, string(model.StatusApproved), "decided item shows its status instead of buttons")
	assert.NotContains(t, body, "/admin/questions/pq1/approve", "decided item loses its decision buttons")

	trigger := rr.Header().Get("Hx-Trigger")
	assert.Contains(t, trigger, "showToast")
	assert.Contains(t, trigger, "Question approved.")
}

func TestModerate_NonHTMX_RedirectsWithConfirmationNotice(t *testing.T) {
	env := newUITestEnv(t)

	rr := httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("answers", "pa1", "reject", false), testSession(true)))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin?notice="+url.QueryEscape("Answer rejected."), rr.Header().Get("Location"))
}

func TestModerate_InFlight_TriggersInfoToast(t *testing.T) {
	env := newUITestEnv(t)
	env.moderation.TransitionErr = moderation.ErrInFlight
	env.moderation.View = pendingView()

	rr := httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("questions", "pq1", "approve", true), testSession(true)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Hx-Trigger"), "already in progress")
}

func TestModerate_AlreadyDecided_TriggersInfoToast(t *testing.T) {
	env := newUITestEnv(t)
	env.moderation.TransitionErr = apperrors.Validation("item already decided")
	env.moderation.View = pendingView()

	rr := httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("questions", "pq1", "reject", true), testSession(true)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Hx-Trigger"), "already decided")
}

func TestModerate_Unauthorized_ClearsFlagAndRedirects(t *testing.T) {
	env := newUITestEnv(t)
	env.moderation.TransitionErr = apperrors.Unauthorized("forbidden")

	rr := httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("questions", "pq1", "approve", false), testSession(true)))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/questions", rr.Header().Get("Location"))
	assert.Equal(t, []bool{false}, env.auth.SetAdminCalls())
}

func TestModerate_StateGone_RedirectsToReload(t *testing.T) {
	env := newUITestEnv(t)
	env.moderation.TransitionErr = apperrors.NotFound("no pending items loaded")

	rr := httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("questions", "pq1", "approve", false), testSession(true)))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))
}

func TestModerate_InvalidKindOrAction_NotFound(t *testing.T) {
	env := newUITestEnv(t)

	rr := httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("widgets", "pq1", "approve", false), testSession(true)))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	env.h.Moderate(rr, withSession(moderateRequest("questions", "pq1", "promote", false), testSession(true)))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Empty(t, env.moderation.Transitions())
}
