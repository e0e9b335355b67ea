package collect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agenthands/followgraph/internal/core/model"
)

const friendsKeyPrefix = "followgraph:friends:" // followgraph:friends:{entity_id}

// FriendCache stores friend lists between runs so a restarted batch skips finished entities.
type FriendCache interface {
	Get(ctx context.Context, entityID string) (model.FriendSet, bool, error)
	Put(ctx context.Context, entityID string, friends model.FriendSet) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, entityID string) (model.FriendSet, bool, error) {
	data, err := c.client.Get(ctx, friendsKeyPrefix+entityID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached friends: %w", err)
	}

	friends := model.FriendSet{}
	if err := json.Unmarshal(data, &friends); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached friends: %w", err)
	}
	return friends, true, nil
}

func (c *RedisCache) Put(ctx context.Context, entityID string, friends model.FriendSet) error {
	if friends == nil {
		friends = model.FriendSet{}
	}
	data, err := json.Marshal(friends)
	if err != nil {
		return fmt.Errorf("failed to marshal friends: %w", err)
	}
	if err := c.client.Set(ctx, friendsKeyPrefix+entityID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache friends: %w", err)
	}
	return nil
}
