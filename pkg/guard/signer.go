package guard

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenExpiry = 15 * time.Minute

// TokenSigner mints HS256 access tokens compatible with JWTVerifier. The
// production issuer lives outside this service; the signer exists for the
// database-free binary and for tests.
type TokenSigner struct {
	Secret []byte
	Issuer string
	Expiry time.Duration
}

// Sign mints a token for subject. An empty role omits the role claim, which
// is how issuers that do not embed roles behave. A zero Expiry falls back to
// DefaultTokenExpiry; a negative Expiry mints an already-expired token.
func (s TokenSigner) Sign(subject, role string) (string, error) {
	expiry := s.Expiry
	if expiry == 0 {
		expiry = DefaultTokenExpiry
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(expiry)),
	}
	if s.Issuer != "" {
		claims["iss"] = s.Issuer
	}
	if role != "" {
		claims["role"] = role
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}
