// Package redissvc wraps the shared Redis client with the small set of
// operations the rest of the service needs.
package redissvc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}

// PushJSON appends the JSON encoding of v to the list at key.
func (s *RedisService) PushJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s entry: %w", key, err)
	}
	return s.rdb.RPush(s.ctx, key, data).Err()
}

// Drain returns the full list at key and deletes it.
func (s *RedisService) Drain(key string) ([]string, error) {
	entries, err := s.rdb.LRange(s.ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		_ = s.rdb.Del(s.ctx, key).Err()
	}
	return entries, nil
}
