package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:"

// Blacklist keeps revoked token ids in Redis. The key lives exactly until
// the token's own expiry, so entries evict themselves and a lookup after
// that point correctly reports "not revoked" for a token that can no longer
// verify anyway. The value is the revocation timestamp, for inspection.
type Blacklist struct {
	rdb *redis.Client
}

// NewBlacklist returns a Redis-backed blacklist.
func NewBlacklist(rdb *redis.Client) *Blacklist {
	return &Blacklist{rdb: rdb}
}

// Revoke marks jti revoked until expire. Already-expired tokens are ignored.
func (b *Blacklist) Revoke(ctx context.Context, jti string, expire time.Time) error {
	ttl := time.Until(expire)
	if ttl <= 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return b.rdb.Set(ctx, blacklistKeyPrefix+jti, now, ttl).Err()
}

// IsRevoked reports whether jti is blacklisted.
func (b *Blacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
