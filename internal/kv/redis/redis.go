// Package redis backs slots with Redis keys. Session slots map directly onto
// key TTLs, and the record store blob is a single durable key.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tin229oo/nadias-lending/internal/kv"
)

var _ kv.Store = (*Store)(nil)

// Store wraps a go-redis client as a slot store.
type Store struct {
	client *redis.Client
}

// New creates a store talking to the Redis instance at addr.
func New(addr string) *Store {
	return &Store{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping verifies connectivity so startup can fail fast.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *Store) Close() {
	_ = s.client.Close()
}
