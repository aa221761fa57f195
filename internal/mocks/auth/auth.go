package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.IdentityAPI  = (*StubIdentityAPI)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// StubIdentityAPI simulates the upstream identity endpoints with fixed
// responses. Function fields override the defaults per test.
type StubIdentityAPI struct {
	LoginFunc func(ctx context.Context, in ports.LoginInput) (domainauth.Credential, error)
	MeFunc    func(ctx context.Context, cred domainauth.Credential) (ports.Identity, error)

	// Defaults used when the function fields are nil.
	Credential domainauth.Credential
	Role       string

	mu         sync.Mutex
	loginCalls int
	meCalls    int
}

func (s *StubIdentityAPI) Login(ctx context.Context, in ports.LoginInput) (domainauth.Credential, error) {
	s.mu.Lock()
	s.loginCalls++
	s.mu.Unlock()
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, in)
	}
	if s.Credential.IsZero() {
		return "stub-credential", nil
	}
	return s.Credential, nil
}

func (s *StubIdentityAPI) Me(ctx context.Context, cred domainauth.Credential) (ports.Identity, error) {
	s.mu.Lock()
	s.meCalls++
	s.mu.Unlock()
	if s.MeFunc != nil {
		return s.MeFunc(ctx, cred)
	}
	return ports.Identity{Role: s.Role}, nil
}

// LoginCalls reports how many times Login was invoked.
func (s *StubIdentityAPI) LoginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

// MeCalls reports how many times Me was invoked.
func (s *StubIdentityAPI) MeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meCalls
}
