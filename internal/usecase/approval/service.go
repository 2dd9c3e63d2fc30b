package approval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/domain/match"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
)

// Service marks matches as approved. Approval is one-way.
type Service struct {
	docs Documents
}

// New creates an approval service.
func New(docs Documents) *Service {
	return &Service{docs: docs}
}

// Approve sets the approved flag on the match identified by key, persists the
// list and returns it. An unknown key is a silent no-op: nothing is written
// and the current matches are returned.
func (s *Service) Approve(ctx context.Context, key match.Key) ([]match.Match, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	updated, ok := doc.Approve(key)
	if !ok {
		logpkg.FromContext(ctx).Debug("Approve ignored, no such match",
			zap.String("pattern_id", key.PatternID),
			zap.String("matched_text", key.Text),
		)
		return doc.Matches(), nil
	}

	saved, err := s.docs.ReplaceMatches(ctx, updated.Matches())
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	return saved.Matches(), nil
}
