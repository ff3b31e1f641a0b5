package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uxforge/refit/internal/agent"
	"github.com/uxforge/refit/internal/config"
	"github.com/uxforge/refit/internal/llm"
	"github.com/uxforge/refit/internal/metrics"
	"github.com/uxforge/refit/internal/pipeline"
	"github.com/uxforge/refit/internal/retrieval"
	"github.com/uxforge/refit/internal/websearch"
)

// app holds the wiring shared by serve and the one-shot commands.
type app struct {
	cfg       config.Config
	pipe      *pipeline.Pipeline
	assistant *agent.Router
	metrics   *metrics.Metrics
	guideline *retrieval.Store
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogging(cfg.LogLevel)

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	m := metrics.New()
	taskLLM := llm.NewClient(cfg.LLMProvider, cfg.LLMAPIKey, cfg.Model, cfg.LLMBaseURL)
	agentLLM := llm.NewClient(cfg.LLMProvider, cfg.LLMAPIKey, cfg.AgentModel, cfg.LLMBaseURL)

	pipe := pipeline.New(taskLLM, cfg.Temperature, slog.Default(), pipeline.WithObserver(m))

	a := &app{cfg: cfg, pipe: pipe, metrics: m}

	// Assistant tools degrade with configuration: the guideline index
	// needs a database and web search needs an API key, microcopy only
	// needs the model.
	var tools []agent.Tool
	if cfg.DatabaseURL != "" {
		guideline, err := retrieval.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect guideline index: %w", err)
		}
		a.guideline = guideline
		tools = append(tools, agent.NewGuidelineTool(agentLLM, guideline, cfg.GuidelineTopK, cfg.Temperature))
		slog.Info("guideline index connected")
	} else {
		slog.Warn("DATABASE_URL not set, guideline lookup disabled")
	}
	tools = append(tools, agent.NewMicrocopyTool(agentLLM, cfg.Temperature))
	if cfg.SearchAPIKey != "" {
		searcher := websearch.NewClient(cfg.SearchAPIKey, cfg.SearchBaseURL)
		tools = append(tools, agent.NewWebSearchTool(searcher, cfg.WebSearchLimit))
	} else {
		slog.Warn("TAVILY_API_KEY not set, web search disabled")
	}

	a.assistant = agent.NewRouter(agentLLM, tools, cfg.Temperature, slog.Default())
	return a, nil
}

func (a *app) close() {
	if a.guideline != nil {
		a.guideline.Close()
	}
}
