package app

import (
	"context"
	"testing"

	"github.com/kailas-cloud/regexboard/internal/db/memory"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	patrepo "github.com/kailas-cloud/regexboard/internal/repository/pattern"
	"github.com/kailas-cloud/regexboard/internal/usecase/health"
	"github.com/kailas-cloud/regexboard/internal/usecase/matching"
)

type fixedFiller string

func (f fixedFiller) Sentences(int) string { return string(f) }

func TestNew_EndToEnd(t *testing.T) {
	store := memory.NewStore()
	defer store.Close()

	a := New(store, Settings{
		KeyPrefix:    "t:",
		MatchTimeout: matching.DefaultTimeout,
		Instrumented: true,
		Filler:       fixedFiller("cat dog cat"),
	}, nil)
	ctx := context.Background()

	st, err := a.Dashboard.CreatePattern(ctx, "/cat/")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(st.Document.Matches()) != 1 {
		t.Fatalf("expected 1 match, got %d", len(st.Document.Matches()))
	}

	id := st.Patterns[0].ID()
	matches, err := a.Dashboard.Approve(ctx, match.Key{PatternID: id, Text: "cat"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !matches[0].Approved {
		t.Error("expected approved match")
	}

	if _, err := store.Get(ctx, "t:"+patrepo.StorageKey); err != nil {
		t.Errorf("patterns not stored under prefix: %v", err)
	}
	if rep := a.Health.Check(ctx); rep.Status != health.Healthy {
		t.Errorf("health: got %s", rep.Status)
	}
}

func TestNew_DefaultFiller(t *testing.T) {
	store := memory.NewStore()
	defer store.Close()

	a := New(store, Settings{FillerSentences: 3}, nil)
	doc, err := a.Documents.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Text() == "" {
		t.Error("expected seeded text")
	}
}
