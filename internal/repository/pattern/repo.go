package pattern

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/db"
	"github.com/kailas-cloud/regexboard/internal/domain"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
)

// StorageKey is the key suffix of the pattern collection.
const StorageKey = "regex-store"

// store is the consumer interface for patterns (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/pattern.Repository: the whole collection lives under one key.
type Repo struct {
	store store
	key   string
}

// New creates a pattern repository. keyPrefix is prepended to StorageKey.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, key: keyPrefix + StorageKey}
}

// Key returns the storage key of the collection.
func (r *Repo) Key() string { return r.key }

// Load returns the stored collection in insertion order. A missing key is an empty collection.
func (r *Repo) Load(ctx context.Context) ([]dompat.Pattern, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []dompat.Pattern{}, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorruptState, r.key, err)
	}

	patterns, dropped := patternsFromJSON(v)
	if dropped > 0 {
		logpkg.FromContext(ctx).Warn("Dropped malformed pattern records",
			zap.String("key", r.key),
			zap.Int("dropped", dropped),
		)
	}
	return patterns, nil
}

// Save replaces the stored collection in a single write.
func (r *Repo) Save(ctx context.Context, patterns []dompat.Pattern) error {
	data, err := json.Marshal(patternsToRows(patterns))
	if err != nil {
		return fmt.Errorf("marshal patterns: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}
