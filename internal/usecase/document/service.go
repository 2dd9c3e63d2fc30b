package document

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/domain"
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
	"github.com/kailas-cloud/regexboard/internal/lorem"
)

// Service owns the single stored document and its match list.
type Service struct {
	repo      Repository
	filler    Filler
	sentences int
}

// New creates a document service seeding new documents with lorem.DefaultSentences sentences.
func New(repo Repository, filler Filler) *Service {
	return &Service{repo: repo, filler: filler, sentences: lorem.DefaultSentences}
}

// WithSentences sets how many sentences a seeded document gets.
func (s *Service) WithSentences(n int) *Service {
	if n > 0 {
		s.sentences = n
	}
	return s
}

// Load returns the stored document. When nothing is stored yet it generates
// filler text, persists it with an empty match list and returns it. Text is
// generated nowhere else.
func (s *Service) Load(ctx context.Context) (domdoc.Document, error) {
	doc, err := s.repo.Load(ctx)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domdoc.Document{}, fmt.Errorf("load document: %w", err)
	}

	doc = domdoc.New(s.filler.Sentences(s.sentences))
	if err := s.repo.Save(ctx, doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("seed document: %w", err)
	}
	logpkg.FromContext(ctx).Info("Seeded document",
		zap.Int("sentences", s.sentences),
		zap.Int("text_len", len(doc.Text())),
	)
	return doc, nil
}

// ReplaceMatches stores matches as the document's full match list, keeping
// the text, and returns the updated document.
func (s *Service) ReplaceMatches(ctx context.Context, matches []match.Match) (domdoc.Document, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return domdoc.Document{}, err
	}

	updated := doc.WithMatches(matches)
	if err := s.repo.Save(ctx, updated); err != nil {
		return domdoc.Document{}, fmt.Errorf("save document: %w", err)
	}
	return updated, nil
}

// Regenerate discards the stored document and seeds a new one. Matches are
// lost with the old text.
func (s *Service) Regenerate(ctx context.Context) (domdoc.Document, error) {
	if err := s.repo.Reset(ctx); err != nil {
		return domdoc.Document{}, fmt.Errorf("reset document: %w", err)
	}
	return s.Load(ctx)
}
