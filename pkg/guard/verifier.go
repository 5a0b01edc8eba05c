package guard

import "context"

// Claims is what the token issuer embeds about a verified caller. Role may be
// empty when the issuer does not attach a role claim.
type Claims struct {
	Subject string `json:"sub"`
	Role    string `json:"role,omitempty"`
}

// TokenVerifier verifies and decodes a bearer token. Implementations may
// perform network I/O or cached lookups; that is opaque to callers. Any
// failure reason (expired, revoked, bad signature) is reported as an error
// and collapsed to a single unauthorized outcome by the gate.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
