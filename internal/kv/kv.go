// Package kv defines the named-slot persistence boundary. Every durable piece
// of state in the system lives in a slot: the record store blob under one key,
// each session under its own short-lived key. Implementations hold whole
// values; there are no partial updates.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a slot does not exist (or has expired).
var ErrNotFound = errors.New("slot not found")

// Store is the slot backend contract shared by the memory, redis, postgres,
// and mongo implementations.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the slot's value as one unit. A zero ttl means the slot
	// never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error
	Close()
}
