package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenDenylistRepository keeps revoked token ids in Redis until the token
// would have expired anyway.
type TokenDenylistRepository struct {
	client *redis.Client
	log    *zap.SugaredLogger
}

func NewTokenDenylistRepository(client *redis.Client, log *zap.SugaredLogger) *TokenDenylistRepository {
	return &TokenDenylistRepository{client: client, log: log}
}

func denylistKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

// Revoke adds tokenID to the denylist. A zero ttl keeps the entry forever.
func (r *TokenDenylistRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := denylistKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	r.log.Infow("redis set",
		"key", key,
		"ttl", ttl,
		"result", "ok",
		"error", err,
	)

	return err
}

// IsRevoked reports whether tokenID is on the denylist.
func (r *TokenDenylistRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := denylistKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()

	r.log.Infow("redis exists",
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}
