// Package session keeps per-conversation working state. Sessions are
// ephemeral: they live in memory or Redis with a TTL and are never
// written to durable storage.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/uxforge/refit/internal/dialect"
	"github.com/uxforge/refit/internal/pipeline"
)

// ErrNotFound is returned when a session has expired or never existed.
var ErrNotFound = errors.New("session not found")

// Answer records one question answered by the tool router.
type Answer struct {
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Tools          []string  `json:"tools"`
	CeilingLimited bool      `json:"ceiling_limited,omitempty"`
	AskedAt        time.Time `json:"asked_at"`
}

// Session is the working state of one meeting-to-code workflow.
type Session struct {
	ID          uuid.UUID               `json:"id"`
	CreatedAt   time.Time               `json:"created_at"`
	Transcript  string                  `json:"transcript,omitempty"`
	FocusArea   string                  `json:"focus_area,omitempty"`
	Dialect     dialect.Dialect         `json:"dialect,omitempty"`
	Analysis    *pipeline.ModelResponse `json:"analysis,omitempty"`
	Improvement *pipeline.ModelResponse `json:"improvement,omitempty"`
	Summary     string                  `json:"summary,omitempty"`
	Answers     []Answer                `json:"answers,omitempty"`
}

// New creates an empty session with a fresh identifier.
func New() *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}

// Store holds sessions for their TTL. Save overwrites the whole record
// and refreshes the TTL.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
