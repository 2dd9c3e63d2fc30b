package pattern

import (
	"context"

	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
)

// Repository defines the storage contract for the pattern collection.
type Repository interface {
	Load(ctx context.Context) ([]dompat.Pattern, error)
	Save(ctx context.Context, patterns []dompat.Pattern) error
}
