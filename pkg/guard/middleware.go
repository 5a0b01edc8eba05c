package guard

import (
	"context"
	"net/http"

	"github.com/verdantops/irridash/pkg/apperr"
)

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "irridash context value " + k.name
}

var authContextKey = &contextKey{"AuthContext"}

// FromContext returns the AuthContext stored by the gate middleware.
func FromContext(ctx context.Context) (*AuthContext, bool) {
	auth, ok := ctx.Value(authContextKey).(*AuthContext)
	return auth, ok
}

// WithAuthContext stores an AuthContext in ctx. Exposed for handler tests.
func WithAuthContext(ctx context.Context, auth *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, auth)
}

// Authenticator is route middleware that requires a verified caller and
// stashes the AuthContext for downstream handlers.
func (g *Gate) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, err := g.RequireAuth(r)
		if err != nil {
			apperr.RespondError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAuthContext(r.Context(), auth)))
	})
}

// RequireRoleMiddleware is route middleware that requires a caller at or
// above minRole. The stored AuthContext carries the normalized role.
func (g *Gate) RequireRoleMiddleware(minRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, err := g.RequireRole(r, minRole)
			if err != nil {
				apperr.RespondError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAuthContext(r.Context(), auth)))
		})
	}
}
