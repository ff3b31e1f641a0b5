package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/uxforge/refit/internal/api"
	"github.com/uxforge/refit/internal/events"
	"github.com/uxforge/refit/internal/processor"
	"github.com/uxforge/refit/internal/session"
	"github.com/uxforge/refit/internal/speech"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and event-bus workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg

	slog.Info("refit starting", "port", cfg.Port)

	// Session store: Redis when configured, otherwise in-process.
	var sessions session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		sessions = redisStore
		slog.Info("redis session store connected")
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		slog.Warn("REDIS_URL not set, sessions are per-instance")
	}

	opts := []api.Option{api.WithMetrics(a.metrics)}
	if cfg.SpeechKey != "" && cfg.SpeechRegion != "" {
		opts = append(opts, api.WithTranscriber(speech.NewClient(cfg.SpeechKey, cfg.SpeechRegion, cfg.SpeechLanguage)))
		slog.Info("speech client ready", "region", cfg.SpeechRegion, "language", cfg.SpeechLanguage)
	} else {
		slog.Warn("speech not configured, transcription endpoint disabled")
	}

	// Event bus: optional, transcripts can also arrive over HTTP.
	if cfg.NatsURL != "" {
		bus, err := events.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer bus.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)

		proc := processor.New(sessions, a.pipe, bus, slog.Default())
		if err := bus.Subscribe(events.SubjectTranscriptStored, proc.HandleTranscriptStored); err != nil {
			slog.Error("failed to subscribe to transcript events", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("NATS_URL not set, event ingestion disabled")
	}

	srv := api.NewServer(cfg.Port, a.pipe, a.assistant, sessions, slog.Default(), opts...)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("refit ready", "port", cfg.Port, "model", cfg.Model, "agent_model", cfg.AgentModel)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	slog.Info("shutting down")
	cancel()
	// Give in-flight handlers a moment to finish their responses.
	time.Sleep(200 * time.Millisecond)
	slog.Info("refit stopped")
	return nil
}
