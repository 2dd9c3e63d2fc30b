// Package memory provides an in-process db.Store for tests and throwaway sessions.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/regexboard/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps values in a map. Values are copied on the way in and out.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Ping fails only after Close.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// Close marks the store closed; later calls fail with db.ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrClosed}
	}
	v, ok := s.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a value at the given key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpSet, Err: db.ErrClosed}
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpDel, Err: db.ErrClosed}
	}
	delete(s.data, key)
	return nil
}
