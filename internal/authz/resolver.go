package authz

// Package authz resolves the effective administrator status of a session.
//
// Two checks cooperate: a local, optimistic decode of the held credential
// (no signature verification; the payload is a hint, not a proof) and an
// authoritative remote check against the upstream identity endpoint. The
// resolved flag is advisory UI state only. Privilege is enforced
// exclusively by the upstream API, which verifies the credential on every
// privileged call.

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/singleflight"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// adminRole is the normalized role name that grants the advisory flag.
const adminRole = "admin"

// remoteAdminRole is the exact role string the identity endpoint reports
// for administrators.
const remoteAdminRole = "Admin"

// roleClaimExpr searches the decoded claim set for the role claim: the
// primary key first, then the pluralized alternative, then the legacy
// namespaced key, stopping at the first present.
const roleClaimExpr = `role || roles || "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"`

// Resolver combines the local and remote admin checks.
type Resolver struct {
	identity ports.IdentityAPI
	logger   *slog.Logger

	// flight dedupes concurrent remote checks for the same credential.
	flight singleflight.Group
}

// NewResolver constructs a Resolver. The logger may be nil.
func NewResolver(identity ports.IdentityAPI, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{identity: identity, logger: logger}
}

// ResolveLocal reports whether the held credential claims the admin role.
// It decodes the credential without verification and fails closed: any
// absent credential, decode failure, or unrecognizable claim yields false.
// It never returns an error.
func (r *Resolver) ResolveLocal(cred domainauth.Credential) bool {
	if cred.IsZero() {
		return false
	}

	claims, err := decodeClaims(cred)
	if err != nil {
		r.logger.Debug("credential decode failed", "error", err)
		return false
	}

	roles := extractRoles(claims)
	for _, role := range roles {
		if strings.ToLower(role) == adminRole {
			return true
		}
	}
	return false
}

// ResolveRemote asks the upstream identity endpoint whether the credential
// belongs to an administrator. It never returns an error: auth rejections,
// network failures, and unexpected payloads all resolve to false so the
// caller's flow is never interrupted. Concurrent calls for the same
// credential share one upstream request.
func (r *Resolver) ResolveRemote(ctx context.Context, cred domainauth.Credential) bool {
	if cred.IsZero() {
		return false
	}

	v, err, _ := r.flight.Do(string(cred), func() (any, error) {
		identity, err := r.identity.Me(ctx, cred)
		if err != nil {
			r.logger.Debug("remote admin check failed", "error", err)
			return false, nil
		}
		return identity.Role == remoteAdminRole, nil
	})
	if err != nil {
		return false
	}
	admin, ok := v.(bool)
	return ok && admin
}

// Resolve returns the effective admin flag: the local check seeds an
// optimistic value, but the remote result is authoritative and overwrites
// it in both directions once available.
func (r *Resolver) Resolve(ctx context.Context, cred domainauth.Credential) bool {
	local := r.ResolveLocal(cred)
	remote := r.ResolveRemote(ctx, cred)
	if local != remote {
		r.logger.Debug("admin checks disagree", "local", local, "remote", remote)
	}
	return remote
}

// Expiry extracts the credential's expiry claim. ok is false when the
// credential carries no usable expiry.
func Expiry(cred domainauth.Credential) (time.Time, bool) {
	if cred.IsZero() {
		return time.Time{}, false
	}
	claims, err := decodeClaims(cred)
	if err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// decodeClaims extracts the unverified claim set from a credential.
func decodeClaims(cred domainauth.Credential) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(string(cred), claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// extractRoles normalizes whatever shape the role claim takes into a flat
// list of role strings. A string that looks like a serialized list is
// parsed as one; if that parse fails the whole string is treated as a
// single literal role rather than failing the resolution.
func extractRoles(claims jwt.MapClaims) []string {
	found, err := jmespath.Search(roleClaimExpr, map[string]any(claims))
	if err != nil || found == nil {
		return nil
	}

	switch v := found.(type) {
	case string:
		if strings.HasPrefix(strings.TrimSpace(v), "[") {
			var list []any
			if jsonErr := json.Unmarshal([]byte(v), &list); jsonErr == nil {
				return stringify(list)
			}
		}
		return []string{v}
	case []any:
		return stringify(v)
	default:
		return nil
	}
}

func stringify(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
