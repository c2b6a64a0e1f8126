package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"shelpify/backend/internal/domain"
)

type RedisDiscountCache struct {
	client *redis.Client
}

func NewRedisDiscountCache(addr string, password string, db int) *RedisDiscountCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisDiscountCache{client: client}
}

func (c *RedisDiscountCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisDiscountCache) Close() error {
	return c.client.Close()
}

func (c *RedisDiscountCache) Get(ctx context.Context, key string) (*domain.DiscountSuggestionsResponse, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp domain.DiscountSuggestionsResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *RedisDiscountCache) Set(ctx context.Context, key string, value *domain.DiscountSuggestionsResponse, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
