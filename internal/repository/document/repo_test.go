package document

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/regexboard/internal/db"
	"github.com/kailas-cloud/regexboard/internal/domain"
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
)

// --- Load ---

func TestLoad_Missing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Load(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if key != "regexboard:document-store" {
			t.Errorf("unexpected key: %s", key)
		}
		return []byte(`{"text":"hello world hello","matches":[
			{"approved":true,"pattern":{"id":"p1","regex":"/hello/"},"matchedText":"hello"},
			{"approved":false,"pattern":{"id":"p2","regex":"/world/"},"matchedText":"world"}
		]}`), nil
	}

	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text() != "hello world hello" {
		t.Errorf("text: got %q", doc.Text())
	}
	ms2 := doc.Matches()
	if len(ms2) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(ms2))
	}
	if !ms2[0].Approved || ms2[0].Pattern.ID() != "p1" || ms2[0].Text != "hello" {
		t.Errorf("first match: %+v", ms2[0])
	}
	if ms2[1].Approved || ms2[1].Pattern.Regex() != "/world/" {
		t.Errorf("second match: %+v", ms2[1])
	}
}

func TestLoad_CoercesMalformedMatches(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = storedJSON(`{"text":"abc","matches":[
		{"approved":"yes","pattern":{"id":"p1","regex":"/a/"},"matchedText":"a"},
		{"approved":true,"pattern":{"id":"p1","regex":"/a/"}},
		{"approved":true,"pattern":"p1","matchedText":"a"},
		{"approved":true,"matchedText":"b"},
		{"approved":true,"pattern":{"id":"p1","regex":"/a/"},"matchedText":"a"},
		17
	]}`)

	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := doc.Matches()
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving match, got %d", len(got))
	}
	if got[0].Approved {
		t.Error("non-bool approved must read as false")
	}
}

func TestLoad_WrongTypes(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = storedJSON(`{"text":42,"matches":"none"}`)

	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text() != "" {
		t.Errorf("text: got %q", doc.Text())
	}
	if got := doc.Matches(); got == nil || len(got) != 0 {
		t.Errorf("expected empty matches, got %#v", got)
	}
}

func TestLoad_NonObject(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = storedJSON(`[1,2,3]`)

	if _, err := repo.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_CorruptJSON(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = storedJSON(`{"text":`)

	if _, err := repo.Load(context.Background()); !errors.Is(err, domain.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestLoad_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	storeErr := &db.Error{Op: db.OpGet, Err: errors.New("conn reset")}
	ms.getFn = func(context.Context, string) ([]byte, error) { return nil, storeErr }

	_, err := repo.Load(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *db.Error, got %v", err)
	}
}

// --- Save ---

func TestSave_PersistedShape(t *testing.T) {
	repo, ms := newTestRepo(t)

	var written []byte
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		if key != "regexboard:document-store" {
			t.Errorf("unexpected key: %s", key)
		}
		written = value
		return nil
	}

	p := dompat.Reconstruct("p1", "/hello/")
	doc := domdoc.Reconstruct("hello", []match.Match{{Approved: true, Pattern: p, Text: "hello"}})
	if err := repo.Save(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		Text    string `json:"text"`
		Matches []struct {
			Approved bool `json:"approved"`
			Pattern  struct {
				ID    string `json:"id"`
				Regex string `json:"regex"`
			} `json:"pattern"`
			MatchedText string `json:"matchedText"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(written, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Text != "hello" || len(got.Matches) != 1 {
		t.Fatalf("unexpected document: %s", written)
	}
	m := got.Matches[0]
	if !m.Approved || m.Pattern.ID != "p1" || m.Pattern.Regex != "/hello/" || m.MatchedText != "hello" {
		t.Errorf("unexpected match: %s", written)
	}
}

func TestSave_EmptyMatchesIsArray(t *testing.T) {
	repo, ms := newTestRepo(t)

	var written string
	ms.setFn = func(_ context.Context, _ string, value []byte) error {
		written = string(value)
		return nil
	}

	if err := repo.Save(context.Background(), domdoc.New("text")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != `{"text":"text","matches":[]}` {
		t.Errorf("unexpected payload: %s", written)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	repo, ms := newTestRepo(t)

	var stored []byte
	ms.setFn = func(_ context.Context, _ string, value []byte) error {
		stored = value
		return nil
	}
	ms.getFn = func(context.Context, string) ([]byte, error) { return stored, nil }

	p := dompat.Reconstruct("p1", "/o/")
	doc := domdoc.Reconstruct("foo", []match.Match{match.New(p, "o")})
	if err := repo.Save(context.Background(), doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Text() != "foo" || len(got.Matches()) != 1 || got.Matches()[0].Key() != (match.Key{PatternID: "p1", Text: "o"}) {
		t.Errorf("round trip mismatch: %+v", got.Matches())
	}
}

// --- Reset ---

func TestReset(t *testing.T) {
	repo, ms := newTestRepo(t)

	var deleted string
	ms.delFn = func(_ context.Context, key string) error {
		deleted = key
		return db.ErrKeyNotFound
	}

	if err := repo.Reset(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "regexboard:document-store" {
		t.Errorf("deleted %q", deleted)
	}
}
