package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/uxforge/refit/internal/dialect"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	s := New()
	s.Transcript = "오늘 회의에서 로그인 버튼 위치를 논의했습니다."
	s.Dialect = dialect.React
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Transcript != s.Transcript {
		t.Errorf("transcript mismatch")
	}
	if got.Dialect != dialect.React {
		t.Errorf("expected react dialect, got %s", got.Dialect)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }

	s := New()
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("save: %v", err)
	}

	store.now = func() time.Time { return base.Add(11 * time.Minute) }
	_, err := store.Get(context.Background(), s.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	s := New()
	s.Summary = "original"
	store.Save(ctx, s)

	got, _ := store.Get(ctx, s.ID)
	got.Summary = "mutated"

	again, _ := store.Get(ctx, s.ID)
	if again.Summary != "original" {
		t.Errorf("store handed out shared state")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	s := New()
	store.Save(ctx, s)
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted session to be gone, got %v", err)
	}
}
