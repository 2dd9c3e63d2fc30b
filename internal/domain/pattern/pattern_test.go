package pattern

import (
	"errors"
	"testing"

	"github.com/dlclark/regexp2"

	"github.com/kailas-cloud/regexboard/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	p, err := New("/hello/i")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() == "" {
		t.Error("expected generated ID")
	}
	if p.Regex() != "/hello/i" {
		t.Errorf("regex: got %q", p.Regex())
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a, err := New("/a/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New("/a/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID() == b.ID() {
		t.Errorf("expected distinct IDs, both %q", a.ID())
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("/invalid")
	if !errors.Is(err, domain.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestWithRegex_KeepsID(t *testing.T) {
	p := Reconstruct("p1", "/hello/i")

	updated, err := p.WithRegex("/world/i")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID() != "p1" {
		t.Errorf("ID changed to %q", updated.ID())
	}
	if updated.Regex() != "/world/i" {
		t.Errorf("regex: got %q", updated.Regex())
	}
	if p.Regex() != "/hello/i" {
		t.Errorf("original mutated: %q", p.Regex())
	}

	if _, err := p.WithRegex("/(/"); !errors.Is(err, domain.ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestDescriptor_Corrupt(t *testing.T) {
	p := Reconstruct("p1", "not-a-pattern")
	if _, err := p.Descriptor(); !errors.Is(err, domain.ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	ps := []Pattern{Reconstruct("a", "/a/"), Reconstruct("b", "/b/")}
	if got := IndexOf(ps, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(ps, "zzz"); got != -1 {
		t.Errorf("IndexOf(zzz) = %d, want -1", got)
	}
}

func allMatches(t *testing.T, re *regexp2.Regexp, text string) []string {
	t.Helper()
	var out []string
	m, err := re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
		out = append(out, m.String())
	}
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
