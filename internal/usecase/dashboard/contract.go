package dashboard

import (
	"context"

	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
)

// Patterns is the pattern registry.
type Patterns interface {
	List(ctx context.Context) ([]dompat.Pattern, error)
	Create(ctx context.Context, regex string) ([]dompat.Pattern, error)
	Update(ctx context.Context, id, regex string) ([]dompat.Pattern, error)
	Delete(ctx context.Context, id string) ([]dompat.Pattern, error)
}

// Documents is the document and match store.
type Documents interface {
	Load(ctx context.Context) (domdoc.Document, error)
	ReplaceMatches(ctx context.Context, matches []match.Match) (domdoc.Document, error)
	Regenerate(ctx context.Context) (domdoc.Document, error)
}

// Recomputer derives the match list from patterns and text.
type Recomputer interface {
	Recompute(patterns []dompat.Pattern, text string, previous []match.Match) []match.Match
}

// Approver marks a match approved.
type Approver interface {
	Approve(ctx context.Context, key match.Key) ([]match.Match, error)
}
