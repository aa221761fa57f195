package ports

// Package ports defines interfaces (hexagonal ports) for the upstream
// DoConnect API and session persistence. Implementations live in
// internal/adapters; orchestration in internal/service and
// internal/moderation.

import (
	"context"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
)

// QuestionAPI is the public (unprivileged) upstream surface for questions
// and answers. Submissions through this port enter moderation as Pending.
type QuestionAPI interface {
	// List returns one page of approved questions matching the query.
	List(ctx context.Context, cred domainauth.Credential, q model.ListQuery) (model.QuestionPage, error)

	// Get returns a single question and, when the upstream inlines them,
	// its answers. hasAnswers reports whether answers were inlined.
	Get(ctx context.Context, cred domainauth.Credential, id string) (q model.Question, answers []model.Answer, hasAnswers bool, err error)

	// Answers returns the answers for a question.
	Answers(ctx context.Context, cred domainauth.Credential, questionID string) ([]model.Answer, error)

	// Create submits a new question into pending moderation.
	Create(ctx context.Context, cred domainauth.Credential, draft model.QuestionDraft) (model.Question, error)

	// PostAnswer submits a new answer into pending moderation.
	PostAnswer(ctx context.Context, cred domainauth.Credential, questionID string, draft model.AnswerDraft) (model.Answer, error)
}

// AdminAPI is the elevated upstream surface. Every call is enforced
// server-side; a 401/403 from any of these maps to an unauthorized error
// the workflow engine turns into a fallback or redirect decision.
type AdminAPI interface {
	// CreateQuestion submits a question that is approved immediately.
	CreateQuestion(ctx context.Context, cred domainauth.Credential, draft model.QuestionDraft) (model.Question, error)

	// PostAnswer submits an answer that is approved immediately.
	PostAnswer(ctx context.Context, cred domainauth.Credential, questionID string, draft model.AnswerDraft) (model.Answer, error)

	// PendingQuestions returns the moderation queue for questions.
	PendingQuestions(ctx context.Context, cred domainauth.Credential) ([]model.Question, error)

	// PendingAnswers returns the moderation queue for answers.
	PendingAnswers(ctx context.Context, cred domainauth.Credential) ([]model.Answer, error)

	ApproveQuestion(ctx context.Context, cred domainauth.Credential, id string) error
	RejectQuestion(ctx context.Context, cred domainauth.Credential, id string) error
	ApproveAnswer(ctx context.Context, cred domainauth.Credential, id string) error
	RejectAnswer(ctx context.Context, cred domainauth.Credential, id string) error

	// DeleteQuestion removes a question permanently.
	DeleteQuestion(ctx context.Context, cred domainauth.Credential, id string) error
}

// LoginInput carries login form values.
type LoginInput struct {
	UsernameOrEmail string
	Password        string
}

// Identity is the upstream's answer to "who does this credential belong to".
type Identity struct {
	Role string
}

// IdentityAPI authenticates against the upstream and resolves the
// credential's server-side identity.
type IdentityAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, in LoginInput) (domainauth.Credential, error)

	// Me returns the identity the upstream associates with the credential.
	// This is the authoritative admin check.
	Me(ctx context.Context, cred domainauth.Credential) (Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
