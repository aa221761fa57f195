package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Credential is the opaque bearer token issued by the upstream API on login.
// The client decodes it for an optimistic role check but never treats the
// decoded payload as proof of anything; the upstream API independently
// verifies the credential on every privileged call.
type Credential string

// IsZero reports whether no credential is held.
func (c Credential) IsZero() bool { return c == "" }

// Session is the server-side record we persist for a logged-in user.
// ID is an opaque session identifier (e.g., random URL-safe string).
//
// IsAdmin is advisory UI state only: it decides which controls to render
// and which workflow path to attempt first. It confers no privilege.
type Session struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Token     Credential `json:"token"`
	IsAdmin   bool       `json:"is_admin"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired() bool { return time.Now().After(s.ExpiresAt) }
