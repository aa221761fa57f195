package moderation

import (
	"context"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
)

// Kind identifies the moderation queue an item belongs to. The values
// double as URL path segments.
type Kind string

const (
	KindQuestion Kind = "questions"
	KindAnswer   Kind = "answers"
)

// KindFromString parses a queue kind from a path segment.
func KindFromString(s string) (Kind, bool) {
	switch Kind(s) {
	case KindQuestion, KindAnswer:
		return Kind(s), true
	}
	return "", false
}

// Decision is a moderator's verdict on a pending item.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// DecisionFromString parses a decision from a path segment.
func DecisionFromString(s string) (Decision, bool) {
	switch Decision(s) {
	case DecisionApprove, DecisionReject:
		return Decision(s), true
	}
	return "", false
}

func (d Decision) status() model.Status {
	if d == DecisionApprove {
		return model.StatusApproved
	}
	return model.StatusRejected
}

// ItemState is the decision state tracked per dashboard item. Status is
// what the dashboard displays and is set optimistically when a decision is
// made; Confirmed is the last status the upstream acknowledged. A failed
// decision reverts Status to Confirmed.
type ItemState struct {
	Status    model.Status
	Confirmed model.Status
}

// PendingQuestion is a question awaiting moderation on the dashboard.
type PendingQuestion struct {
	Question model.Question
	ItemState
}

// PendingAnswer is an answer awaiting moderation on the dashboard.
type PendingAnswer struct {
	Answer model.Answer
	ItemState
}

// DashboardView is a point-in-time copy of a session's dashboard, safe to
// hand to a template while decisions proceed concurrently.
type DashboardView struct {
	Questions []PendingQuestion
	Answers   []PendingAnswer
}

// Dashboard holds one session's moderation state. Items keep the order the
// upstream returned them in.
type Dashboard struct {
	// All fields are guarded by the owning Engine's mutex.
	questions []*PendingQuestion
	answers   []*PendingAnswer
	inFlight  map[string]struct{}
}

// LoadPending refreshes the session's dashboard from the upstream. The two
// queues are fetched concurrently and fail independently: a transient
// failure leaves that queue empty, while an auth rejection aborts the load
// so the caller can redirect away.
func (e *Engine) LoadPending(ctx context.Context, sess domainauth.Session) error {
	var (
		questions []model.Question
		answers   []model.Answer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := e.admin.PendingQuestions(gctx, sess.Token)
		if err != nil {
			if apperrors.IsUnauthorized(err) {
				return err
			}
			e.logger.Warn("pending questions fetch failed", "error", err)
			return nil
		}
		questions = items
		return nil
	})
	g.Go(func() error {
		items, err := e.admin.PendingAnswers(gctx, sess.Token)
		if err != nil {
			if apperrors.IsUnauthorized(err) {
				return err
			}
			e.logger.Warn("pending answers fetch failed", "error", err)
			return nil
		}
		answers = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.dashboardLocked(sess.ID)
	d.questions = make([]*PendingQuestion, len(questions))
	for i, q := range questions {
		d.questions[i] = &PendingQuestion{Question: q}
	}
	d.answers = make([]*PendingAnswer, len(answers))
	for i, a := range answers {
		d.answers[i] = &PendingAnswer{Answer: a}
	}
	d.inFlight = make(map[string]struct{})
	return nil
}

// Dashboard returns a copy of the session's current dashboard state.
func (e *Engine) Dashboard(sessionID string) DashboardView {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.dashboards[sessionID]
	if !ok {
		return DashboardView{}
	}
	view := DashboardView{
		Questions: make([]PendingQuestion, len(d.questions)),
		Answers:   make([]PendingAnswer, len(d.answers)),
	}
	for i, q := range d.questions {
		view.Questions[i] = *q
	}
	for i, a := range d.answers {
		view.Answers[i] = *a
	}
	return view
}

// Forget drops a session's dashboard state, typically on logout.
func (e *Engine) Forget(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.dashboards, sessionID)
}

// Transition applies a moderation decision to a dashboard item. The
// displayed status flips before the remote call is made; a duplicate
// decision while the first is in flight fails with ErrInFlight. On a
// remote failure the displayed status reverts to the last confirmed one,
// and auth rejections pass through for the caller's redirect handling.
func (e *Engine) Transition(ctx context.Context, sess domainauth.Session, kind Kind, id string, decision Decision) error {
	target := decision.status()

	if err := e.beginTransition(sess.ID, kind, id, target); err != nil {
		return err
	}

	var err error
	switch {
	case kind == KindQuestion && decision == DecisionApprove:
		err = e.admin.ApproveQuestion(ctx, sess.Token, id)
	case kind == KindQuestion && decision == DecisionReject:
		err = e.admin.RejectQuestion(ctx, sess.Token, id)
	case kind == KindAnswer && decision == DecisionApprove:
		err = e.admin.ApproveAnswer(ctx, sess.Token, id)
	default:
		err = e.admin.RejectAnswer(ctx, sess.Token, id)
	}

	e.finishTransition(sess.ID, kind, id, target, err)

	outcome := "confirmed"
	if err != nil {
		outcome = "reverted"
	}
	e.count("workflow.decision", map[string]string{
		"kind":     string(kind),
		"decision": string(decision),
		"outcome":  outcome,
	})
	return err
}

// beginTransition registers the in-flight decision and sets the optimistic
// status under the lock.
func (e *Engine) beginTransition(sessionID string, kind Kind, id string, target model.Status) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.dashboards[sessionID]
	if !ok {
		return apperrors.NotFound("no pending items loaded")
	}
	state := d.state(kind, id)
	if state == nil {
		return apperrors.NotFound("item is not on the dashboard")
	}

	key := string(kind) + "/" + id
	if _, busy := d.inFlight[key]; busy {
		return ErrInFlight
	}
	if !state.Status.CanTransitionTo(target) {
		return apperrors.Validation("item already decided")
	}

	d.inFlight[key] = struct{}{}
	state.Status = target
	return nil
}

// finishTransition clears the in-flight marker and either confirms the
// optimistic status or reverts it.
func (e *Engine) finishTransition(sessionID string, kind Kind, id string, target model.Status, callErr error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.dashboards[sessionID]
	if !ok {
		return
	}
	delete(d.inFlight, string(kind)+"/"+id)

	state := d.state(kind, id)
	if state == nil {
		return
	}
	if callErr == nil {
		state.Confirmed = target
		return
	}
	state.Status = state.Confirmed
}

// dashboardLocked returns the session's dashboard, creating it if needed.
// Caller holds e.mu.
func (e *Engine) dashboardLocked(sessionID string) *Dashboard {
	d, ok := e.dashboards[sessionID]
	if !ok {
		d = &Dashboard{inFlight: make(map[string]struct{})}
		e.dashboards[sessionID] = d
	}
	return d
}

func (d *Dashboard) state(kind Kind, id string) *ItemState {
	if kind == KindQuestion {
		for _, q := range d.questions {
			if q.Question.ID == id {
				return &q.ItemState
			}
		}
		return nil
	}
	for _, a := range d.answers {
		if a.Answer.ID == id {
			return &a.ItemState
		}
	}
	return nil
}
