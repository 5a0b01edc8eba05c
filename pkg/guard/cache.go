package guard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 60 * time.Second

// CachingVerifier decorates a TokenVerifier with a short-lived Redis cache of
// successful verifications, keyed by token digest. Failures are never cached.
// The TTL must stay short so token expiry is still honored promptly; this is
// a hot-path optimization, not a revocation store.
type CachingVerifier struct {
	inner TokenVerifier
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachingVerifier wraps inner with a Redis cache. A non-positive ttl falls
// back to DefaultCacheTTL.
func NewCachingVerifier(inner TokenVerifier, rdb *redis.Client, ttl time.Duration) *CachingVerifier {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachingVerifier{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "guard:token:" + hex.EncodeToString(sum[:])
}

// Verify returns cached claims when present, otherwise delegates to the
// wrapped verifier and caches the result. Cache errors degrade to a plain
// verification; they never fail the request.
func (v *CachingVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	key := cacheKey(token)

	if data, err := v.rdb.Get(ctx, key).Bytes(); err == nil {
		var claims Claims
		if err := json.Unmarshal(data, &claims); err == nil {
			return claims, nil
		}
	} else if err != redis.Nil {
		slog.Warn("token cache read failed", "err", err)
	}

	claims, err := v.inner.Verify(ctx, token)
	if err != nil {
		return Claims{}, err
	}

	if data, err := json.Marshal(claims); err == nil {
		if err := v.rdb.Set(ctx, key, data, v.ttl).Err(); err != nil {
			slog.Warn("token cache write failed", "err", err)
		}
	}
	return claims, nil
}
