package document

import (
	"context"

	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
)

// Repository defines the storage contract for the document record.
type Repository interface {
	Load(ctx context.Context) (domdoc.Document, error)
	Save(ctx context.Context, doc domdoc.Document) error
	Reset(ctx context.Context) error
}

// Filler generates placeholder text for a fresh document.
type Filler interface {
	Sentences(n int) string
}
