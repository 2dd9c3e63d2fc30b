package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/regexboard/internal/db"
)

func TestGetSet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("got %q, want v2", got)
	}
}

func TestSet_CopiesValue(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf)
	buf[0] = 'X'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
	got[1] = 'Y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased internal buffer: %q", again)
	}
}

func TestDel(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.Set(ctx, "k", []byte("v"))
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Del(ctx, "missing"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestClose(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close()
	if err := s.Ping(ctx); !errors.Is(err, db.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := s.Set(ctx, "k", nil); !errors.Is(err, db.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
