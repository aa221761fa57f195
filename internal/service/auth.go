package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doconnect/doconnect-web/internal/authz"
	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Identity ports.IdentityAPI
	Resolver *authz.Resolver
	Sessions ports.SessionStore

	// FallbackTTL is the session lifetime used when the upstream credential
	// carries no usable expiry claim.
	FallbackTTL time.Duration

	Logger *slog.Logger
}

// AuthService owns the session lifecycle: exchanging login form values for
// an upstream bearer credential, resolving the advisory admin flag, and
// persisting the session until logout or expiry.
type AuthService struct {
	identity ports.IdentityAPI
	resolver *authz.Resolver
	sessions ports.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// IsSessionExpired reports whether an error from GetSession means the
// session outlived its credential.
func IsSessionExpired(err error) bool {
	return errors.Is(err, errSessionExpired)
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		identity: opts.Identity,
		resolver: opts.Resolver,
		sessions: opts.Sessions,
		ttl:      opts.FallbackTTL,
		logger:   logger,
	}
}

// Login authenticates against the upstream and creates a session holding
// the bearer credential. The admin flag is seeded from the resolver; the
// session lifetime follows the credential's expiry claim when it expires
// before the configured fallback.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (domainauth.Session, error) {
	input.UsernameOrEmail = strings.TrimSpace(input.UsernameOrEmail)
	if input.UsernameOrEmail == "" {
		return domainauth.Session{}, apperrors.ValidationField("usernameOrEmail", "username or email is required")
	}
	if input.Password == "" {
		return domainauth.Session{}, apperrors.ValidationField("password", "password is required")
	}

	cred, err := s.identity.Login(ctx, input)
	if err != nil {
		return domainauth.Session{}, err
	}

	expiresAt := time.Now().Add(s.ttl)
	if exp, ok := authz.Expiry(cred); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}

	session := domainauth.Session{
		ID:        uuid.New().String(),
		Username:  input.UsernameOrEmail,
		Token:     cred,
		IsAdmin:   s.resolver.Resolve(ctx, cred),
		ExpiresAt: expiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}

	s.logger.Info("user logged in", "username", session.Username, "is_admin", session.IsAdmin)
	return session, nil
}

// GetSession retrieves a session by ID. Expired sessions are cleaned up
// and reported via IsSessionExpired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}

	// The store's TTL should have lapsed the key already; this is the
	// defensive check for a clock that moved past ExpiresAt first.
	if session.Expired() {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return domainauth.Session{}, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return domainauth.Session{}, errSessionExpired
	}

	return session, nil
}

// Logout removes a session and with it the stored credential.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// RefreshAdmin re-resolves the advisory admin flag against the upstream
// and persists the result. The remote answer overwrites the stored flag in
// both directions.
func (s *AuthService) RefreshAdmin(ctx context.Context, session domainauth.Session) (domainauth.Session, error) {
	isAdmin := s.resolver.Resolve(ctx, session.Token)
	if isAdmin == session.IsAdmin {
		return session, nil
	}
	return s.SetAdmin(ctx, session, isAdmin)
}

// SetAdmin overwrites the session's advisory admin flag and persists it.
// Used directly when an elevated call is rejected and the flag must be
// cleared without another upstream round trip.
func (s *AuthService) SetAdmin(ctx context.Context, session domainauth.Session, isAdmin bool) (domainauth.Session, error) {
	if session.IsAdmin != isAdmin {
		s.logger.Info("advisory admin flag changed", "username", session.Username, "is_admin", isAdmin)
	}
	session.IsAdmin = isAdmin
	if err := s.sessions.Save(ctx, session); err != nil {
		return session, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}
