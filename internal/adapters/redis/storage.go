package redis

// Package redis provides the Redis-backed browser storage used in production.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "admin:browser:"

// Storage keeps each browser scope in one Redis hash so that the persisted
// keys of a scope are written and expired together.
type Storage struct {
	client redis.UniversalClient
	prefix string
}

// NewStorage creates a Redis-backed storage with the default key prefix.
func NewStorage(client redis.UniversalClient) *Storage {
	return &Storage{
		client: client,
		prefix: defaultPrefix,
	}
}

// NewStorageWithPrefix creates a Redis-backed storage with a custom key prefix.
func NewStorageWithPrefix(client redis.UniversalClient, prefix string) *Storage {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Storage{
		client: client,
		prefix: prefix,
	}
}

func (s *Storage) key(scope string) string { return s.prefix + scope }

func (s *Storage) Load(ctx context.Context, scope string, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if scope == "" || len(keys) == 0 {
		return out, nil
	}

	vals, err := s.client.HMGet(ctx, s.key(scope), keys...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return out, nil
		}
		return nil, fmt.Errorf("redis hmget: %w", err)
	}

	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		out[keys[i]] = str
	}
	return out, nil
}

func (s *Storage) Store(ctx context.Context, scope string, values map[string]string, ttl time.Duration) error {
	if scope == "" {
		return errors.New("storage scope cannot be empty")
	}
	if len(values) == 0 {
		return nil
	}

	args := make([]any, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}

	key := s.key(scope)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, args...)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis store: %w", err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, scope string, keys ...string) error {
	if scope == "" || len(keys) == 0 {
		return nil // Nothing to delete
	}
	if err := s.client.HDel(ctx, s.key(scope), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}
