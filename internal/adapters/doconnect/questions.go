package doconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/doconnect/doconnect-web/internal/errors"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// QuestionClient is the public (unprivileged) view over the shared core.
// Split from AdminClient because both surfaces post answers with the same
// signature but different moderation semantics.
type QuestionClient struct {
	core *Client
}

var _ ports.QuestionAPI = (*QuestionClient)(nil)

// Questions returns the public question surface of the API.
func (c *Client) Questions() *QuestionClient {
	return &QuestionClient{core: c}
}

// List returns one page of questions. GET /questions?q=&page=&pageSize=.
func (c *QuestionClient) List(ctx context.Context, cred domainauth.Credential, q model.ListQuery) (model.QuestionPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		params.Set("q", q.Search)
	}

	body, err := c.core.get(ctx, cred, "/questions", params.Encode())
	if err != nil {
		return model.QuestionPage{}, err
	}

	var page model.QuestionPageWire
	if err := json.Unmarshal(body, &page); err != nil {
		return model.QuestionPage{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode question list")
	}
	return page.Normalize(), nil
}

// Get returns a single question; the upstream may inline answers.
// GET /questions/{id}.
func (c *QuestionClient) Get(ctx context.Context, cred domainauth.Credential, id string) (model.Question, []model.Answer, bool, error) {
	qid, err := pathID("question", id)
	if err != nil {
		return model.Question{}, nil, false, apperrors.Wrap(err, apperrors.ErrCodeValidation, "get question")
	}

	body, err := c.core.get(ctx, cred, "/questions/"+url.PathEscape(qid), "")
	if err != nil {
		return model.Question{}, nil, false, err
	}

	q, answers, hasAnswers, err := model.DecodeQuestionDetail(body)
	if err != nil {
		return model.Question{}, nil, false, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode question detail")
	}
	return q, answers, hasAnswers, nil
}

// Answers returns answers for a question. GET /questions/{id}/answers.
func (c *QuestionClient) Answers(ctx context.Context, cred domainauth.Credential, questionID string) ([]model.Answer, error) {
	qid, err := pathID("question", questionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "list answers")
	}

	body, err := c.core.get(ctx, cred, "/questions/"+url.PathEscape(qid)+"/answers", "")
	if err != nil {
		return nil, err
	}

	var wire []model.AnswerWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode answers")
	}
	answers := make([]model.Answer, 0, len(wire))
	for _, a := range wire {
		answers = append(answers, a.Normalize())
	}
	return answers, nil
}

// Create submits a question on the public path. POST /questions (multipart).
func (c *QuestionClient) Create(ctx context.Context, cred domainauth.Credential, draft model.QuestionDraft) (model.Question, error) {
	return c.core.submitQuestion(ctx, cred, "/questions", draft)
}

// PostAnswer submits an answer on the public path.
// POST /questions/{id}/answers (multipart).
func (c *QuestionClient) PostAnswer(ctx context.Context, cred domainauth.Credential, questionID string, draft model.AnswerDraft) (model.Answer, error) {
	qid, err := pathID("question", questionID)
	if err != nil {
		return model.Answer{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, "post answer")
	}
	return c.core.submitAnswer(ctx, cred, "/questions/"+url.PathEscape(qid)+"/answers", draft)
}

// submitQuestion posts a multipart question form to the given path and
// decodes the created question. Shared by the public and admin paths.
func (c *Client) submitQuestion(ctx context.Context, cred domainauth.Credential, path string, draft model.QuestionDraft) (model.Question, error) {
	buf, contentType, err := questionForm(draft).encode()
	if err != nil {
		return model.Question{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode question form")
	}

	body, err := c.do(ctx, requestParams{
		Method:      http.MethodPost,
		Path:        path,
		Body:        buf,
		ContentType: contentType,
		Cred:        cred,
	})
	if err != nil {
		return model.Question{}, err
	}

	var wire model.QuestionWire
	if len(body) > 0 {
		if err := json.Unmarshal(body, &wire); err != nil {
			return model.Question{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode created question")
		}
	}
	return wire.Normalize(), nil
}

// submitAnswer posts a multipart answer form to the given path and decodes
// the created answer. Shared by the public and admin paths.
func (c *Client) submitAnswer(ctx context.Context, cred domainauth.Credential, path string, draft model.AnswerDraft) (model.Answer, error) {
	buf, contentType, err := answerForm(draft).encode()
	if err != nil {
		return model.Answer{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode answer form")
	}

	body, err := c.do(ctx, requestParams{
		Method:      http.MethodPost,
		Path:        path,
		Body:        buf,
		ContentType: contentType,
		Cred:        cred,
	})
	if err != nil {
		return model.Answer{}, err
	}

	var wire model.AnswerWire
	if len(body) > 0 {
		if err := json.Unmarshal(body, &wire); err != nil {
			return model.Answer{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode created answer")
		}
	}
	return wire.Normalize(), nil
}
