// Package events connects the service to the NATS bus used for
// transcript ingestion and analysis notifications.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects on the workflow bus.
const (
	// SubjectTranscriptStored carries finished meeting transcripts
	// published by upstream recording services.
	SubjectTranscriptStored = "uiux.meeting.transcript.stored"

	// SubjectAnalysisCompleted announces a finished analysis with its
	// session reference.
	SubjectAnalysisCompleted = "uiux.analysis.completed"

	// SubjectAnalysisFailed announces an analysis that produced a
	// failure response.
	SubjectAnalysisFailed = "uiux.analysis.failed"
)

// TranscriptEvent is the payload of SubjectTranscriptStored.
type TranscriptEvent struct {
	SessionID  string `json:"session_id,omitempty"`
	Transcript string `json:"transcript"`
	FocusArea  string `json:"focus_area,omitempty"`
	Source     string `json:"source,omitempty"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
