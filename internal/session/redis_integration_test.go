//go:build integration

package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping integration test")
	}

	ctx := context.Background()
	store, err := NewRedisStore(ctx, url, time.Minute)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close()

	s := New()
	s.Transcript = "integration transcript"
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	defer store.Delete(ctx, s.ID)

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Transcript != s.Transcript {
		t.Errorf("transcript mismatch")
	}

	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
