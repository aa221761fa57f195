package httpx

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/moderation"
)

// maxUploadBytes caps the total multipart memory for answer/question
// attachments. Larger parts spill to temp files per net/http semantics.
const maxUploadBytes = 16 << 20

// QuestionView renders a question with its answers and the answer form.
// GET /questions/{id}.
func (h *UIHandlers) QuestionView(w http.ResponseWriter, r *http.Request) {
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

	q, answers, err := h.Questions.Get(r.Context(), sess, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().Error("question fetch failed", "question_id", id, "error", err)
		h.renderPage(w, r, NewTemplateData(r, questionViewMeta()).
			WithError("Could not load the question. Please try again.").
			Build())
		return
	}

	h.renderPage(w, r, h.questionViewData(r, q, answers).Build())
}

// AnswerCreate submits an answer to a question.
// POST /questions/{id}/answers (multipart: text + files).
// The elevated endpoint is tried first; a public fallback happens inside
// the workflow engine. Pending answers are shown immediately even though
// the upstream public list will not include them until approval.
func (h *UIHandlers) AnswerCreate(w http.ResponseWriter, r *http.Request) {
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

	draft, err := parseAnswerDraft(r)
	if err != nil {
		h.rerenderQuestionView(w, r, sess, id, map[string]string{"text": err.Error()})
		return
	}
	if strings.TrimSpace(draft.Text) == "" {
		h.rerenderQuestionView(w, r, sess, id, map[string]string{"text": "Answer text is required."})
		return
	}

	ans, err := h.Moderation.PostAnswer(r.Context(), sess, id, draft)
	if err != nil {
		h.logger().Error("answer submit failed", "question_id", id, "error", err)
		h.rerenderQuestionViewWithText(w, r, sess, id, draft.Text)
		return
	}

	notice := "Answer posted."
	if ans.Status == model.StatusPending {
		notice = "Answer submitted for review."
	}

	if !IsHTMX(r) {
		redirectWithNotice(w, r, "/questions/"+id, notice)
		return
	}

	// htmx path: refresh the answer list and splice the accepted answer in
	// at the top when the public listing does not carry it yet.
	q, answers, getErr := h.Questions.Get(r.Context(), sess, id)
	if getErr != nil {
		redirectWithNotice(w, r, "/questions/"+id, notice)
		return
	}
	if !containsAnswer(answers, ans.ID) {
		answers = moderation.PrependAnswer(answers, ans)
	}

	triggerToast(w, notice, "success")
	data := h.questionViewData(r, q, answers).Build()
	if renderErr := h.T.RenderNamed(w, "answer-list", data); renderErr != nil {
		h.logAndRenderTemplateError(w, r, renderErr, "answer list fragment")
	}
}

func questionViewMeta() PageMeta {
	return PageMeta{
		Title:       "Question - DoConnect",
		PageTitle:   "Question",
		CurrentPage: PageQuestionView,
	}
}

func (h *UIHandlers) questionViewData(r *http.Request, q model.Question, answers []model.Answer) *TemplateDataBuilder {
	return NewTemplateData(r, PageMeta{
		Title:       q.Title + " - DoConnect",
		PageTitle:   q.Title,
		CurrentPage: PageQuestionView,
	}).
		With("Question", q).
		With("Answers", answers).
		WithNotice(noticeFromQuery(r))
}

// rerenderQuestionView re-renders the detail page with field errors while
// keeping the fetched question and answers.
func (h *UIHandlers) rerenderQuestionView(w http.ResponseWriter, r *http.Request, sess domainauth.Session, id string, fieldErrors map[string]string) {
	q, answers, err := h.Questions.Get(r.Context(), sess, id)
	if err != nil {
		redirectWithNotice(w, r, "/questions/"+id, "Could not submit the answer. Please try again.")
		return
	}
	h.renderPage(w, r, h.questionViewData(r, q, answers).
		WithFieldErrors(fieldErrors).
		Build())
}

// rerenderQuestionViewWithText keeps the typed answer text after an
// upstream failure so the user does not lose their draft.
func (h *UIHandlers) rerenderQuestionViewWithText(w http.ResponseWriter, r *http.Request, sess domainauth.Session, id, text string) {
	q, answers, err := h.Questions.Get(r.Context(), sess, id)
	if err != nil {
		redirectWithNotice(w, r, "/questions/"+id, "Could not submit the answer. Please try again.")
		return
	}
	h.renderPage(w, r, h.questionViewData(r, q, answers).
		With("AnswerText", text).
		WithError("Could not submit the answer. Please try again.").
		Build())
}

func containsAnswer(answers []model.Answer, id string) bool {
	if id == "" {
		return false
	}
	for _, a := range answers {
		if a.ID == id {
			return true
		}
	}
	return false
}

// parseAnswerDraft reads the answer form, including attached images.
func parseAnswerDraft(r *http.Request) (model.AnswerDraft, error) {
	files, err := parseUploads(r)
	if err != nil {
		return model.AnswerDraft{}, err
	}
	return model.AnswerDraft{
		Text:  r.FormValue("text"),
		Files: files,
	}, nil
}

// parseUploads reads multipart file parts named "files". Plain form posts
// without attachments pass through with no uploads.
func parseUploads(r *http.Request) ([]model.Upload, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form submission")
		}
		return nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("attachments are too large or malformed")
	}

	var uploads []model.Upload
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("could not read attachment %q", header.Filename)
		}
		content, readErr := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		closeErr := f.Close()
		if readErr != nil || closeErr != nil {
			return nil, fmt.Errorf("could not read attachment %q", header.Filename)
		}
		uploads = append(uploads, model.Upload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return uploads, nil
}
