// Package redisreg keeps the user registry in a Redis set.
package redisreg

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"partybot/internal/storage"
)

// DefaultKey is the set holding every known chat id
const DefaultKey = "partybot:users"

// Registry is a user registry backed by a Redis set. SADD makes Add an
// atomic append-if-absent.
type Registry struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRegistry wraps client. An empty key means DefaultKey.
func NewRegistry(client *redis.Client, key string, logger *zap.Logger) *Registry {
	if key == "" {
		key = DefaultKey
	}
	return &Registry{client: client, key: key, logger: logger}
}

// Ping checks the connection
func (r *Registry) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// List returns every stored id in ascending order
func (r *Registry) List(ctx context.Context) ([]int64, error) {
	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read registry from redis: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			r.logger.Warn("Skipping malformed registry member", zap.String("member", m))
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Add stores id, reporting whether it was new
func (r *Registry) Add(ctx context.Context, id int64) (bool, error) {
	n, err := r.client.SAdd(ctx, r.key, strconv.FormatInt(id, 10)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add user to redis: %w", err)
	}
	if n > 0 {
		r.logger.Info("User added to registry", zap.Int64("chat_id", id))
	}
	return n > 0, nil
}

var _ storage.UserRegistry = (*Registry)(nil)
