// Package processor runs the analysis workflow for transcripts that
// arrive over the event bus instead of the HTTP API.
package processor

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/uxforge/refit/internal/events"
	"github.com/uxforge/refit/internal/pipeline"
	"github.com/uxforge/refit/internal/session"
)

// Publisher is the bus-side surface the processor needs.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor turns stored-transcript events into analyses.
type Processor struct {
	sessions session.Store
	pipe     *pipeline.Pipeline
	bus      Publisher
	logger   *slog.Logger
}

func New(sessions session.Store, pipe *pipeline.Pipeline, bus Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		sessions: sessions,
		pipe:     pipe,
		bus:      bus,
		logger:   logger,
	}
}

// HandleTranscriptStored is the NATS handler for
// events.SubjectTranscriptStored. It analyzes the transcript, records
// the outcome in a session, and announces the result on the bus.
func (p *Processor) HandleTranscriptStored(subject string, data []byte) {
	ctx := context.Background()

	var evt events.TranscriptEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse transcript event", "error", err)
		return
	}
	if strings.TrimSpace(evt.Transcript) == "" {
		p.logger.Warn("transcript event with empty transcript", "session_id", evt.SessionID, "source", evt.Source)
		return
	}

	sess := p.resolveSession(ctx, evt.SessionID)

	p.logger.Info("processing transcript",
		"session_id", sess.ID,
		"source", evt.Source,
		"focus_area", evt.FocusArea,
	)

	resp := p.pipe.Analyze(ctx, evt.Transcript, evt.FocusArea)

	sess.Transcript = evt.Transcript
	sess.FocusArea = evt.FocusArea
	sess.Analysis = &resp
	if err := p.sessions.Save(ctx, sess); err != nil {
		p.logger.Error("failed to save session", "session_id", sess.ID, "error", err)
	}

	if !resp.Success {
		p.publish(events.SubjectAnalysisFailed, map[string]any{
			"session_id": sess.ID.String(),
			"source":     evt.Source,
			"error":      resp.Error,
		})
		return
	}

	rs := pipeline.DecodeRequirementSet(resp.Data)
	p.publish(events.SubjectAnalysisCompleted, map[string]any{
		"session_id":       sess.ID.String(),
		"source":           evt.Source,
		"requirements":     len(rs.UIRequirements),
		"feedback_entries": len(rs.UserFeedback),
		"structured":       resp.Data != nil,
	})

	p.logger.Info("transcript processed",
		"session_id", sess.ID,
		"requirements", len(rs.UIRequirements),
		"structured", resp.Data != nil,
	)
}

// resolveSession reuses the event's session when it names a live one,
// otherwise starts a fresh session.
func (p *Processor) resolveSession(ctx context.Context, rawID string) *session.Session {
	if rawID != "" {
		if id, err := uuid.Parse(rawID); err == nil {
			if sess, err := p.sessions.Get(ctx, id); err == nil {
				return sess
			}
		}
	}
	return session.New()
}

func (p *Processor) publish(subject string, payload map[string]any) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(subject, payload); err != nil {
		p.logger.Error("failed to publish event", "subject", subject, "error", err)
	}
}
