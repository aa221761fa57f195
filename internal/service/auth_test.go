package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doconnect/doconnect-web/internal/authz"
	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	apperrors "github.com/doconnect/doconnect-web/internal/errors"
	mockauth "github.com/doconnect/doconnect-web/internal/mocks/auth"
	"github.com/doconnect/doconnect-web/internal/ports"
	"github.com/doconnect/doconnect-web/internal/testutil"
)

const fallbackTTL = 12 * time.Hour

func newAuthService(identity *mockauth.StubIdentityAPI, store ports.SessionStore) *AuthService {
	return NewAuthService(AuthServiceOptions{
		Identity:    identity,
		Resolver:    authz.NewResolver(identity, nil),
		Sessions:    store,
		FallbackTTL: fallbackTTL,
	})
}

func TestAuthService_Login_AdminSession(t *testing.T) {
	cred := testutil.AdminCredential(t)
	identity := &mockauth.StubIdentityAPI{Credential: cred, Role: "Admin"}
	store := mockauth.NewMemorySessionStore()
	svc := newAuthService(identity, store)

	sess, err := svc.Login(context.Background(), ports.LoginInput{UsernameOrEmail: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, cred, sess.Token)
	assert.True(t, sess.IsAdmin)

	// The credential's one hour expiry claim wins over the 12h fallback.
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, stored)
}

func TestAuthService_Login_NonAdminSession(t *testing.T) {
	cred := testutil.UserCredential(t)
	identity := &mockauth.StubIdentityAPI{Credential: cred, Role: "User"}
	svc := newAuthService(identity, mockauth.NewMemorySessionStore())

	sess, err := svc.Login(context.Background(), ports.LoginInput{UsernameOrEmail: "user", Password: "pw"})
	require.NoError(t, err)
	assert.False(t, sess.IsAdmin)
}

func TestAuthService_Login_FallbackTTLWithoutExpiryClaim(t *testing.T) {
	cred := testutil.SignedCredential(t, jwt.MapClaims{"sub": "u1", "role": "User"})
	identity := &mockauth.StubIdentityAPI{Credential: cred}
	svc := newAuthService(identity, mockauth.NewMemorySessionStore())

	sess, err := svc.Login(context.Background(), ports.LoginInput{UsernameOrEmail: "user", Password: "pw"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(fallbackTTL), sess.ExpiresAt, 5*time.Second)
}

func TestAuthService_Login_Validation(t *testing.T) {
	identity := &mockauth.StubIdentityAPI{}
	svc := newAuthService(identity, mockauth.NewMemorySessionStore())

	_, err := svc.Login(context.Background(), ports.LoginInput{Password: "pw"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "usernameOrEmail", apperrors.GetField(err))

	_, err = svc.Login(context.Background(), ports.LoginInput{UsernameOrEmail: "user"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "password", apperrors.GetField(err))

	assert.Zero(t, identity.LoginCalls(), "no upstream call with invalid input")
}

func TestAuthService_Login_UpstreamRejection(t *testing.T) {
	identity := &mockauth.StubIdentityAPI{
		LoginFunc: func(_ context.Context, _ ports.LoginInput) (domainauth.Credential, error) {
			return "", apperrors.Unauthorized("bad credentials")
		},
	}
	store := mockauth.NewMemorySessionStore()
	svc := newAuthService(identity, store)

	_, err := svc.Login(context.Background(), ports.LoginInput{UsernameOrEmail: "user", Password: "wrong"})
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Zero(t, store.Len(), "no session persisted on failed login")
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newAuthService(&mockauth.StubIdentityAPI{}, store)

	sess := testutil.NewSession().WithID("old").ExpiringAt(time.Now().Add(-time.Minute)).Build()
	require.NoError(t, store.Save(context.Background(), sess))

	_, err := svc.GetSession(context.Background(), "old")
	assert.True(t, IsSessionExpired(err))
	assert.Zero(t, store.Len(), "expired session cleaned up")
}

func TestAuthService_LogoutDestroysSession(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newAuthService(&mockauth.StubIdentityAPI{}, store)
	ctx := context.Background()

	sess := testutil.NewSession().WithID("s1").Build()
	require.NoError(t, store.Save(ctx, sess))

	require.NoError(t, svc.Logout(ctx, "s1"))
	_, err := svc.GetSession(ctx, "s1")
	assert.Error(t, err)

	// Logging out an unknown or empty session is a no-op.
	assert.NoError(t, svc.Logout(ctx, "s1"))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAuthService_RefreshAdmin_Downgrade(t *testing.T) {
	identity := &mockauth.StubIdentityAPI{Role: "User"}
	store := mockauth.NewMemorySessionStore()
	svc := newAuthService(identity, store)
	ctx := context.Background()

	sess := testutil.NewSession().WithID("s1").WithToken(testutil.AdminCredential(t)).AsAdmin().Build()
	require.NoError(t, store.Save(ctx, sess))

	refreshed, err := svc.RefreshAdmin(ctx, sess)
	require.NoError(t, err)
	assert.False(t, refreshed.IsAdmin, "remote answer overwrites the local claim")

	stored, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin)
}

func TestAuthService_RefreshAdmin_Upgrade(t *testing.T) {
	identity := &mockauth.StubIdentityAPI{Role: "Admin"}
	store := mockauth.NewMemorySessionStore()
	svc := newAuthService(identity, store)
	ctx := context.Background()

	sess := testutil.NewSession().WithID("s1").WithToken(testutil.UserCredential(t)).Build()
	require.NoError(t, store.Save(ctx, sess))

	refreshed, err := svc.RefreshAdmin(ctx, sess)
	require.NoError(t, err)
	assert.True(t, refreshed.IsAdmin)
}

func TestAuthService_SetAdmin_Persists(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newAuthService(&mockauth.StubIdentityAPI{}, store)
	ctx := context.Background()

	sess := testutil.NewSession().WithID("s1").AsAdmin().Build()
	require.NoError(t, store.Save(ctx, sess))

	updated, err := svc.SetAdmin(ctx, sess, false)
	require.NoError(t, err)
	assert.False(t, updated.IsAdmin)

	stored, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin)
}
