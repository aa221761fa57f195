package doconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	apperrors "github.com/doconnect/doconnect-web/internal/errors"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// AdminClient is the elevated view over the shared core. Authorization is
// enforced upstream; a 401/403 here is a routing signal for the workflow
// engine, not a failure.
type AdminClient struct {
	core *Client
}

var _ ports.AdminAPI = (*AdminClient)(nil)

// Admin returns the elevated surface of the API.
func (c *Client) Admin() *AdminClient {
	return &AdminClient{core: c}
}

// CreateQuestion submits a question on the elevated path (auto-approved).
// POST /admin/questions (multipart).
func (c *AdminClient) CreateQuestion(ctx context.Context, cred domainauth.Credential, draft model.QuestionDraft) (model.Question, error) {
	return c.core.submitQuestion(ctx, cred, "/admin/questions", draft)
}

// PostAnswer submits an answer that is approved immediately.
// POST /admin/questions/{id}/answers (multipart).
func (c *AdminClient) PostAnswer(ctx context.Context, cred domainauth.Credential, questionID string, draft model.AnswerDraft) (model.Answer, error) {
	qid, err := pathID("question", questionID)
	if err != nil {
		return model.Answer{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, "post answer (admin)")
	}
	return c.core.submitAnswer(ctx, cred, "/admin/questions/"+url.PathEscape(qid)+"/answers", draft)
}

// PendingQuestions returns the question moderation queue, in server order.
// GET /admin/questions/pending.
func (c *AdminClient) PendingQuestions(ctx context.Context, cred domainauth.Credential) ([]model.Question, error) {
	body, err := c.core.get(ctx, cred, "/admin/questions/pending", "")
	if err != nil {
		return nil, err
	}

	var wire []model.QuestionWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode pending questions")
	}
	questions := make([]model.Question, 0, len(wire))
	for _, q := range wire {
		questions = append(questions, q.Normalize())
	}
	return questions, nil
}

// PendingAnswers returns the answer moderation queue, in server order.
// GET /admin/answers/pending.
func (c *AdminClient) PendingAnswers(ctx context.Context, cred domainauth.Credential) ([]model.Answer, error) {
	body, err := c.core.get(ctx, cred, "/admin/answers/pending", "")
	if err != nil {
		return nil, err
	}

	var wire []model.AnswerWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode pending answers")
	}
	answers := make([]model.Answer, 0, len(wire))
	for _, a := range wire {
		answers = append(answers, a.Normalize())
	}
	return answers, nil
}

// ApproveQuestion approves a pending question. POST /admin/questions/{id}/approve.
func (c *AdminClient) ApproveQuestion(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.transition(ctx, cred, "questions", id, "approve")
}

// RejectQuestion rejects a pending question. POST /admin/questions/{id}/reject.
func (c *AdminClient) RejectQuestion(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.transition(ctx, cred, "questions", id, "reject")
}

// ApproveAnswer approves a pending answer. POST /admin/answers/{id}/approve.
func (c *AdminClient) ApproveAnswer(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.transition(ctx, cred, "answers", id, "approve")
}

// RejectAnswer rejects a pending answer. POST /admin/answers/{id}/reject.
func (c *AdminClient) RejectAnswer(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.transition(ctx, cred, "answers", id, "reject")
}

func (c *AdminClient) transition(ctx context.Context, cred domainauth.Credential, kind, id, action string) error {
	tid, err := pathID(kind, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, action)
	}
	return c.core.post(ctx, cred, "/admin/"+kind+"/"+url.PathEscape(tid)+"/"+action)
}

// DeleteQuestion removes a question. DELETE /admin/questions/{id}.
func (c *AdminClient) DeleteQuestion(ctx context.Context, cred domainauth.Credential, id string) error {
	qid, err := pathID("question", id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "delete question")
	}
	_, err = c.core.do(ctx, requestParams{
		Method: http.MethodDelete,
		Path:   "/admin/questions/" + url.PathEscape(qid),
		Cred:   cred,
	})
	return err
}
