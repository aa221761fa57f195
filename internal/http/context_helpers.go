package httpx

import (
	"context"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
func SetSessionInContext(ctx context.Context, session domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session from context and a boolean indicating presence.
func SessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(domainauth.Session); ok {
		return session, true
	}
	return domainauth.Session{}, false
}

// IsAuthenticated reports whether the current request context carries a session.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := SessionFromContext(ctx)
	return ok
}
