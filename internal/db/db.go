package db

import (
	"context"
	"time"
)

// Store is the main database facade: a flat key-value store with lifecycle hooks.
// It stands in for the browser's local storage, so keys are independent and
// writes across keys are not transactional.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
// Get returns ErrKeyNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}
