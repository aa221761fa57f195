// Package moderation implements the submission and moderation workflow on
// top of the upstream API ports. Submissions try the elevated surface first
// and fall back to the public one exactly once on an auth rejection; the
// moderation dashboard tracks optimistic decision state per session and
// reverts it when the upstream disagrees.
package moderation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/observability/statsd"
	"github.com/doconnect/doconnect-web/internal/ports"
)

var (
	// ErrInFlight reports a duplicate decision for an item whose previous
	// remote call has not completed yet.
	ErrInFlight = errors.New("moderation: decision already in flight")

	// ErrConfirmationRequired reports a deletion attempted without the
	// explicit confirmation step.
	ErrConfirmationRequired = errors.New("moderation: deletion requires confirmation")
)

// Display names for submissions whose author the upstream response omits.
const (
	authorAdmin = "Admin"
	authorSelf  = "You"
)

// Engine orchestrates dual-path submissions and dashboard decisions.
type Engine struct {
	public  ports.QuestionAPI
	admin   ports.AdminAPI
	logger  *slog.Logger
	metrics statsd.Sink

	mu         sync.Mutex
	dashboards map[string]*Dashboard
}

// NewEngine constructs an Engine. The logger may be nil.
func NewEngine(public ports.QuestionAPI, admin ports.AdminAPI, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		public:     public,
		admin:      admin,
		logger:     logger,
		dashboards: make(map[string]*Dashboard),
	}
}

// WithMetrics attaches a metrics sink for submission and decision outcome
// counters. A nil sink leaves metrics disabled.
func (e *Engine) WithMetrics(sink statsd.Sink) *Engine {
	e.metrics = sink
	return e
}

func (e *Engine) count(name string, tags map[string]string) {
	if e.metrics != nil {
		e.metrics.Count(name, 1, tags)
	}
}

// PostAnswer submits an answer, preferring the elevated endpoint. An auth
// rejection there triggers exactly one attempt against the public endpoint
// with the identical payload. Elevated submissions come back approved and
// attributed to the admin display name; public ones come back pending and
// attributed to the submitter.
func (e *Engine) PostAnswer(ctx context.Context, sess domainauth.Session, questionID string, draft model.AnswerDraft) (model.Answer, error) {
	ans, err := e.admin.PostAnswer(ctx, sess.Token, questionID, draft)
	if err == nil {
		e.count("workflow.submission", map[string]string{"kind": "answer", "path": "elevated"})
		return normalizeAnswer(ans, model.StatusApproved, authorAdmin), nil
	}
	if !apperrors.IsUnauthorized(err) {
		return model.Answer{}, err
	}

	e.logger.Debug("elevated answer rejected, trying public endpoint", "question_id", questionID)
	ans, err = e.public.PostAnswer(ctx, sess.Token, questionID, draft)
	if err != nil {
		return model.Answer{}, err
	}
	e.count("workflow.submission", map[string]string{"kind": "answer", "path": "public"})
	return normalizeAnswer(ans, model.StatusPending, authorSelf), nil
}

// AskQuestion submits a question with the same dual-path shape as
// PostAnswer: elevated first (auto-approved), public fallback once on an
// auth rejection (enters moderation as pending).
func (e *Engine) AskQuestion(ctx context.Context, sess domainauth.Session, draft model.QuestionDraft) (model.Question, error) {
	q, err := e.admin.CreateQuestion(ctx, sess.Token, draft)
	if err == nil {
		e.count("workflow.submission", map[string]string{"kind": "question", "path": "elevated"})
		return normalizeQuestion(q, model.StatusApproved, authorAdmin), nil
	}
	if !apperrors.IsUnauthorized(err) {
		return model.Question{}, err
	}

	e.logger.Debug("elevated question rejected, trying public endpoint")
	q, err = e.public.Create(ctx, sess.Token, draft)
	if err != nil {
		return model.Question{}, err
	}
	e.count("workflow.submission", map[string]string{"kind": "question", "path": "public"})
	return normalizeQuestion(q, model.StatusPending, authorSelf), nil
}

// DeleteQuestion removes a question through the elevated endpoint. It
// refuses to act without explicit confirmation. Auth rejections surface as
// unauthorized errors so the caller can downgrade the advisory admin flag
// without showing a failure notice.
func (e *Engine) DeleteQuestion(ctx context.Context, sess domainauth.Session, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return e.admin.DeleteQuestion(ctx, sess.Token, id)
}

// RemoveFromPage drops a deleted question from a fetched page and
// decrements the total, floored at zero. The upstream copy is already gone
// when this runs; the page is only the local rendering state, so a page
// that no longer carries the item is left untouched.
func RemoveFromPage(page *model.QuestionPage, id string) {
	for i, q := range page.Items {
		if q.ID == id {
			page.Items = append(page.Items[:i], page.Items[i+1:]...)
			if page.Total > 0 {
				page.Total--
			}
			return
		}
	}
}

// PrependAnswer inserts a freshly accepted answer at the head of the
// displayed answer sequence.
func PrependAnswer(answers []model.Answer, ans model.Answer) []model.Answer {
	return append([]model.Answer{ans}, answers...)
}

func normalizeAnswer(ans model.Answer, status model.Status, author string) model.Answer {
	if !ans.Status.IsSet() {
		ans.Status = status
	}
	if ans.Author == "" {
		ans.Author = author
	}
	if ans.CreatedAt.IsZero() {
		ans.CreatedAt = time.Now()
	}
	return ans
}

func normalizeQuestion(q model.Question, status model.Status, author string) model.Question {
	if !q.Status.IsSet() {
		q.Status = status
	}
	if q.Author == "" {
		q.Author = author
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	return q
}
