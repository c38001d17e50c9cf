package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const inflightTTL = 30 * time.Second

// InflightGuard is a compare-and-swap lock backed by Redis SETNX. It keeps
// a second authentication operation on the same subject from racing the
// first on the session record. Keys expire so an abandoned lock cannot
// block a subject forever.
type InflightGuard struct {
	client *redis.Client
}

func NewInflightGuard(client *redis.Client) *InflightGuard {
	return &InflightGuard{client: client}
}

// Acquire takes the lock for key. Returns false when an operation on the
// same key is already pending.
func (g *InflightGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", inflightTTL).Result()
	if err != nil {
		return false, fmt.Errorf("inflight acquire: %w", err)
	}
	return ok, nil
}

// Release frees the lock so the next operation on the key may start.
func (g *InflightGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.key(key)).Err()
}

func (g *InflightGuard) key(key string) string {
	return "inflight:" + key
}
