package approval

import (
	"context"

	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
)

// Documents reads and writes the stored document.
type Documents interface {
	Load(ctx context.Context) (domdoc.Document, error)
	ReplaceMatches(ctx context.Context, matches []match.Match) (domdoc.Document, error)
}
