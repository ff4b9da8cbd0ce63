package cache

import (
	"context"
	"errors"
	"realitycheck/internal/quota"

	"github.com/redis/go-redis/v9"
)

// QuotaCache is a quota.Limiter backed by Redis counters with a TTL
type QuotaCache interface {
	Check(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, key string) error
}

type quotaCache struct {
	client *redis.Client
	policy quota.Policy
}

func NewQuotaCache(client *redis.Client, policy quota.Policy) QuotaCache {
	return &quotaCache{
		client: client,
		policy: policy,
	}
}

func (c *quotaCache) key(key string) string {
	return "quota:" + c.policy.Name + ":" + key
}

func (c *quotaCache) Check(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Get(ctx, c.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return count < c.policy.Limit, nil
}

// Record increments the counter and sets the window expiry in one MULTI/EXEC,
// so a key can never be left without a TTL. ExpireNX (Redis 7+) keeps the
// expiry of a live window unchanged.
func (c *quotaCache) Record(ctx context.Context, key string) error {
	k := c.key(key)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, c.policy.Window)
		return nil
	})
	return err
}
