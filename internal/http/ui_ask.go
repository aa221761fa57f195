package httpx

import (
	"net/http"
	"strings"

	"github.com/doconnect/doconnect-web/internal/domain/model"
)

// AskForm renders the compose form for a new question.
// GET /questions/ask.
func (h *UIHandlers) AskForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, h.askData(r, model.QuestionDraft{}).Build())
}

// AskSubmit submits a new question.
// POST /questions/ask (multipart: title + text + files).
// Admins land on an approved question; everyone else enters moderation.
func (h *UIHandlers) AskSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}

	files, err := parseUploads(r)
	if err != nil {
		h.renderPage(w, r, h.askData(r, model.QuestionDraft{
			Title: r.FormValue("title"),
			Text:  r.FormValue("text"),
		}).WithFieldErrors(map[string]string{"files": err.Error()}).Build())
		return
	}

	draft := model.QuestionDraft{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
		Files: files,
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(draft.Title) == "" {
		fieldErrors["title"] = "A title is required."
	}
	if strings.TrimSpace(draft.Text) == "" {
		fieldErrors["text"] = "Question text is required."
	}
	if len(fieldErrors) > 0 {
		h.renderPage(w, r, h.askData(r, draft).WithFieldErrors(fieldErrors).Build())
		return
	}

	q, err := h.Moderation.AskQuestion(r.Context(), sess, draft)
	if err != nil {
		h.logger().Error("question submit failed", "error", err)
		h.renderPage(w, r, h.askData(r, draft).
			WithError("Could not submit the question. Please try again.").
			Build())
		return
	}

	notice := "Question posted."
	if q.Status == model.StatusPending {
		notice = "Question submitted for review."
	}
	redirectWithNotice(w, r, "/questions/"+q.ID, notice)
}

func (h *UIHandlers) askData(r *http.Request, draft model.QuestionDraft) *TemplateDataBuilder {
	return NewTemplateData(r, PageMeta{
		Title:       "Ask a Question - DoConnect",
		PageTitle:   "Ask a Question",
		CurrentPage: PageAsk,
	}).
		With("DraftTitle", draft.Title).
		With("DraftText", draft.Text)
}
