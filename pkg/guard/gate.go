package guard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/verdantops/irridash/pkg/apperr"
	"github.com/verdantops/irridash/pkg/metrics"
	"github.com/verdantops/irridash/pkg/rbac"
)

const AccessTokenCookie = "access_token"

// AuthContext is the request-scoped identity of a verified caller. It is
// produced once per request, never persisted, and discarded when the request
// completes. Role holds the raw role claim until RequireRole normalizes it.
type AuthContext struct {
	SubjectID string
	Role      string
}

// Gate turns inbound request credentials into an AuthContext and provides the
// guard contracts every privileged handler calls before doing any work.
type Gate struct {
	verifier TokenVerifier
}

// NewGate creates a gate backed by the given token verifier.
func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// TokenFromCookie extracts the access token cookie, if present.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// VerifyRequest extracts the bearer credential (case-insensitive "Bearer"
// prefix, with an access-token cookie fallback) and verifies it. It returns
// nil on any failure: a request with no credential is indistinguishable from
// one with an invalid credential at this layer, and verifier failure reasons
// are deliberately not surfaced.
func (g *Gate) VerifyRequest(r *http.Request) *AuthContext {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		token = TokenFromCookie(r)
	}
	if token == "" {
		return nil
	}

	claims, err := g.verifier.Verify(r.Context(), token)
	if err != nil {
		slog.Debug("token verification failed", "err", err)
		return nil
	}
	return &AuthContext{SubjectID: claims.Subject, Role: claims.Role}
}

// RequireAuth fails with an unauthorized error when the request carries no
// verifiable credential.
func (g *Gate) RequireAuth(r *http.Request) (*AuthContext, error) {
	auth := g.VerifyRequest(r)
	if auth == nil {
		metrics.IncAuthFailure("unauthorized")
		return nil, apperr.Unauthorized("unauthorized")
	}
	return auth, nil
}

// RequireRole calls RequireAuth and then checks the caller's rank against
// minRole. On success the returned context carries the normalized role.
func (g *Gate) RequireRole(r *http.Request, minRole string) (*AuthContext, error) {
	auth, err := g.RequireAuth(r)
	if err != nil {
		return nil, err
	}

	role := rbac.Normalize(auth.Role)
	if !rbac.HasAtLeast(string(role), minRole) {
		metrics.IncAuthFailure("forbidden")
		return nil, apperr.Forbidden("insufficient role")
	}
	return &AuthContext{SubjectID: auth.SubjectID, Role: string(role)}, nil
}
