package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/domain/model"
)

// SignedCredential mints an HS256-signed bearer credential with the given
// claims. The signature is throwaway; the client never verifies it.
func SignedCredential(t TestingTB, claims jwt.MapClaims) domainauth.Credential {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testutil-secret"))
	if err != nil {
		t.Fatalf("sign credential: %v", err)
	}
	return domainauth.Credential(token)
}

// AdminCredential mints a credential whose payload claims the admin role.
func AdminCredential(t TestingTB) domainauth.Credential {
	return SignedCredential(t, jwt.MapClaims{
		"sub":  "admin-1",
		"role": "Admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

// UserCredential mints a credential with a plain user role.
func UserCredential(t TestingTB) domainauth.Credential {
	return SignedCredential(t, jwt.MapClaims{
		"sub":  "user-1",
		"role": "User",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

// SessionBuilder provides a fluent interface for building sessions.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession creates a SessionBuilder with sensible defaults.
func NewSession() *SessionBuilder {
	return &SessionBuilder{
		sess: domainauth.Session{
			ID:        "test-session",
			Username:  "tester",
			Token:     "test-token",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

// WithID sets the session ID.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.sess.ID = id
	return b
}

// WithToken sets the bearer credential.
func (b *SessionBuilder) WithToken(cred domainauth.Credential) *SessionBuilder {
	b.sess.Token = cred
	return b
}

// AsAdmin sets the advisory admin flag.
func (b *SessionBuilder) AsAdmin() *SessionBuilder {
	b.sess.IsAdmin = true
	return b
}

// ExpiringAt sets the session expiry.
func (b *SessionBuilder) ExpiringAt(t time.Time) *SessionBuilder {
	b.sess.ExpiresAt = t
	return b
}

// Build returns the constructed session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}

// QuestionBuilder provides a fluent interface for building questions.
type QuestionBuilder struct {
	q model.Question
}

// NewQuestion creates a QuestionBuilder with sensible defaults.
func NewQuestion(id string) *QuestionBuilder {
	return &QuestionBuilder{
		q: model.Question{
			ID:        id,
			Title:     "Question " + id,
			Text:      "Body of " + id,
			Author:    "author-1",
			CreatedAt: TestTime(),
			Status:    model.StatusApproved,
		},
	}
}

// WithStatus sets the moderation status.
func (b *QuestionBuilder) WithStatus(s model.Status) *QuestionBuilder {
	b.q.Status = s
	return b
}

// WithImages sets the image references.
func (b *QuestionBuilder) WithImages(images ...string) *QuestionBuilder {
	b.q.Images = images
	return b
}

// Build returns the constructed question.
func (b *QuestionBuilder) Build() model.Question {
	return b.q
}
