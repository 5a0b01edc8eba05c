package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// JWTVerifier verifies HS256 tokens minted by the identity issuer.
type JWTVerifier struct {
	ja *jwtauth.JWTAuth
}

// NewJWTVerifier creates a verifier for the given shared secret. Validation
// options such as jwt.WithIssuer can be passed to tighten acceptance.
func NewJWTVerifier(secret string, opts ...jwt.ValidateOption) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTVerifier{ja: jwtauth.New("HS256", []byte(secret), nil, opts...)}, nil
}

// Verify checks the token signature and registered claims and decodes the
// caller's subject and role claim.
func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(v.ja, tokenString)
	if err != nil {
		return Claims{}, fmt.Errorf("verify token: %w", err)
	}

	claims := Claims{Subject: token.Subject()}
	if claims.Subject == "" {
		// Some issuers put the user id in a private claim instead of sub.
		for _, field := range []string{"uid", "user_id"} {
			if raw, ok := token.Get(field); ok {
				if s, ok := raw.(string); ok && s != "" {
					claims.Subject = s
					break
				}
			}
		}
	}
	if claims.Subject == "" {
		return Claims{}, errors.New("token has no subject")
	}

	if raw, ok := token.Get("role"); ok {
		if s, ok := raw.(string); ok {
			claims.Role = s
		}
	}
	return claims, nil
}

var (
	defaultMu       sync.Mutex
	defaultVerifier TokenVerifier
)

// DefaultVerifier returns the process-wide verifier handle, constructing it
// on first use. Construction failure propagates to the caller and is retried
// on the next call rather than cached, so a transient startup problem does
// not wedge the process.
func DefaultVerifier(secret string, opts ...jwt.ValidateOption) (TokenVerifier, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultVerifier != nil {
		return defaultVerifier, nil
	}
	v, err := NewJWTVerifier(secret, opts...)
	if err != nil {
		return nil, err
	}
	defaultVerifier = v
	return defaultVerifier, nil
}

// ResetDefaultVerifier discards the process-wide verifier. Intended for tests.
func ResetDefaultVerifier() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultVerifier = nil
}
