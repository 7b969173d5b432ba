// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/models"
)

// RedisCache implements engine.ResultCache.
//
// Keys:
//
//	poll:{id}:gen           generation counter, INCR on every vote
//	poll:{id}:result:{gen}  JSON encoded result, expires after ttl
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ engine.ResultCache = (*RedisCache)(nil)

func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	c := redis.NewClient(opts)

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisCache{client: c, ttl: ttl}, nil
}

func (rc *RedisCache) Generation(ctx context.Context, pollID string) (int64, error) {
	gen, err := rc.client.Get(ctx, genKey(pollID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error getting generation from redis: %w", err)
	}
	return gen, nil
}

func (rc *RedisCache) Get(ctx context.Context, pollID string, gen int64) (*models.PollResult, bool, error) {
	b, err := rc.client.Get(ctx, resultKey(pollID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error getting result from redis: %w", err)
	}

	var res models.PollResult
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, false, fmt.Errorf("error decoding cached result: %w", err)
	}
	return &res, true, nil
}

func (rc *RedisCache) Put(ctx context.Context, pollID string, gen int64, result *models.PollResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if err := rc.client.Set(ctx, resultKey(pollID, gen), b, rc.ttl).Err(); err != nil {
		return fmt.Errorf("error setting result in redis: %w", err)
	}
	return nil
}

// Invalidate moves the poll to a new generation. Results stored under older
// generations expire on their own.
func (rc *RedisCache) Invalidate(ctx context.Context, pollID string) error {
	if err := rc.client.Incr(ctx, genKey(pollID)).Err(); err != nil {
		return fmt.Errorf("error incrementing generation in redis: %w", err)
	}
	return nil
}

func (rc *RedisCache) Close() error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing redis client: %w", err)
	}
	return nil
}

func genKey(pollID string) string {
	return fmt.Sprintf("poll:%s:gen", pollID)
}

func resultKey(pollID string, gen int64) string {
	return fmt.Sprintf("poll:%s:result:%d", pollID, gen)
}
