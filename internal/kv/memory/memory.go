// Package memory provides an in-process slot store used by tests and the
// default development backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tin229oo/nadias-lending/internal/kv"
)

var _ kv.Store = (*Store)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store keeps slots in a map. The mutex only guards map access; callers still
// get last-writer-wins semantics on whole slots, same as the remote backends.
type Store struct {
	mu    sync.Mutex
	slots map[string]entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{slots: make(map[string]entry)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.slots[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(s.slots, key)
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.slots[key] = e
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

func (s *Store) Close() {}
