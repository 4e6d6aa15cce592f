// Package ratelimit enforces per-client request budgets backed by redis
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidin1998/apiexercises/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another request under key fits the budget
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewClient creates a redis client from the redis settings
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Uses a sorted set per key; scores are request times in nanoseconds
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]
redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)
if count + 1 > limit then
  return {0, count}
end
redis.call('ZADD', key, now, member)
redis.call('EXPIRE', key, math.ceil(window/1000000000))
return {1, count + 1}
`)

// SlidingWindow allows at most limit requests per key within window
type SlidingWindow struct {
	client redis.Scripter
	prefix string
	limit  int
	window time.Duration
}

// NewSlidingWindow creates a limiter whose keys are namespaced by prefix
func NewSlidingWindow(client redis.Scripter, prefix string, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow records the request when it fits the window
func (s *SlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now().UnixNano()
	res, err := slidingWindowScript.Run(ctx, s.client,
		[]string{s.prefix + ":" + key},
		now, s.window.Nanoseconds(), s.limit, uuid.NewString(),
	).Result()
	if err != nil {
		return false, err
	}
	vals, ok := res.([]interface{})
	if !ok || len(vals) < 2 {
		return false, fmt.Errorf("unexpected redis script result: %v", res)
	}
	allowed, _ := vals[0].(int64)
	return allowed == 1, nil
}
