package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/doconnect/doconnect-web/config"
	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// ErrStale reports a list response that was superseded by a newer request
// from the same session before it arrived. Callers drop the response and
// leave the currently displayed list untouched.
var ErrStale = errors.New("stale list response")

// QuestionServiceOptions groups dependencies for QuestionService.
type QuestionServiceOptions struct {
	API ports.QuestionAPI

	// Origin is the upstream scheme+host used to resolve relative upload
	// paths into absolute image URLs.
	Origin string

	UI     config.UIConfig
	Logger *slog.Logger
}

// QuestionService serves question reads. List requests are sequenced per
// session so that out-of-order responses from overlapping searches never
// replace newer results.
type QuestionService struct {
	api    ports.QuestionAPI
	origin string
	ui     config.UIConfig
	logger *slog.Logger
	seq    seqTracker
}

// NewQuestionService constructs a new QuestionService.
func NewQuestionService(opts QuestionServiceOptions) *QuestionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionService{
		api:    opts.API,
		origin: opts.Origin,
		ui:     opts.UI,
		logger: logger,
	}
}

// List returns one page of questions matching the query. The request takes
// a per-session sequence number when it starts; if a newer request started
// before this one's response arrived, the response is discarded with
// ErrStale whether it succeeded or not.
func (s *QuestionService) List(ctx context.Context, sess domainauth.Session, query model.ListQuery) (model.QuestionPage, error) {
	query = s.clamp(query)
	seq := s.seq.next(sess.ID)

	page, err := s.api.List(ctx, sess.Token, query)
	if !s.seq.isLatest(sess.ID, seq) {
		return model.QuestionPage{}, ErrStale
	}
	if err != nil {
		return model.QuestionPage{}, err
	}

	for i := range page.Items {
		s.resolveImages(page.Items[i].Images)
	}
	return page, nil
}

// Get returns a question with its answers. When the upstream detail
// response does not inline the answers they are fetched separately.
func (s *QuestionService) Get(ctx context.Context, sess domainauth.Session, id string) (model.Question, []model.Answer, error) {
	q, answers, hasAnswers, err := s.api.Get(ctx, sess.Token, id)
	if err != nil {
		return model.Question{}, nil, err
	}
	if !hasAnswers {
		answers, err = s.api.Answers(ctx, sess.Token, id)
		if err != nil {
			return model.Question{}, nil, err
		}
	}

	s.resolveImages(q.Images)
	for i := range answers {
		s.resolveImages(answers[i].Images)
	}
	return q, answers, nil
}

// PageSize returns the configured default page size.
func (s *QuestionService) PageSize() int { return s.ui.PageSize }

// ForgetSession drops the session's sequencing state, typically on logout.
func (s *QuestionService) ForgetSession(sessionID string) {
	s.seq.forget(sessionID)
}

func (s *QuestionService) clamp(q model.ListQuery) model.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = s.ui.PageSize
	}
	if q.PageSize > s.ui.MaxPageSize {
		q.PageSize = s.ui.MaxPageSize
	}
	return q
}

func (s *QuestionService) resolveImages(images []string) {
	for i, img := range images {
		images[i] = model.ImageURL(s.origin, img)
	}
}

// seqTracker issues monotonically increasing sequence numbers per session
// and remembers the latest one.
type seqTracker struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func (t *seqTracker) next(sessionID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		t.latest = make(map[string]uint64)
	}
	t.latest[sessionID]++
	return t.latest[sessionID]
}

func (t *seqTracker) isLatest(sessionID string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[sessionID] == seq
}

func (t *seqTracker) forget(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.latest, sessionID)
}
