package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/db"
	"github.com/kailas-cloud/regexboard/internal/domain"
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
)

// StorageKey is the key suffix of the document record.
const StorageKey = "document-store"

// store is the consumer interface for the document (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store store
	key   string
}

// New creates a document repository. keyPrefix is prepended to StorageKey.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, key: keyPrefix + StorageKey}
}

// Key returns the storage key of the document.
func (r *Repo) Key() string { return r.key }

// Load reads the document. Returns domain.ErrNotFound when nothing is stored.
func (r *Repo) Load(ctx context.Context) (domdoc.Document, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Document{}, fmt.Errorf("document: %w", domain.ErrNotFound)
		}
		return domdoc.Document{}, fmt.Errorf("get %s: %w", r.key, err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %s: %w", domain.ErrCorruptState, r.key, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		// A stored value that is not an object holds no usable text; treat as absent so it gets reseeded.
		logpkg.FromContext(ctx).Warn("Ignoring non-object document record", zap.String("key", r.key))
		return domdoc.Document{}, fmt.Errorf("document: %w", domain.ErrNotFound)
	}

	doc, dropped := documentFromJSON(obj)
	if dropped > 0 {
		logpkg.FromContext(ctx).Warn("Dropped malformed match records",
			zap.String("key", r.key),
			zap.Int("dropped", dropped),
		)
	}
	return doc, nil
}

// Save writes text and matches together in a single write.
func (r *Repo) Save(ctx context.Context, doc domdoc.Document) error {
	data, err := json.Marshal(documentToRow(doc))
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}

// Reset removes the stored document; the next Load reseeds it.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.Del(ctx, r.key); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return fmt.Errorf("del %s: %w", r.key, err)
	}
	return nil
}
