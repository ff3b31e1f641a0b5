// Package pipeline orchestrates the meeting-analysis and code-improvement
// tasks: prompt construction, one model round trip, JSON extraction.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uxforge/refit/internal/dialect"
	"github.com/uxforge/refit/internal/extract"
	"github.com/uxforge/refit/internal/prompts"
	"github.com/uxforge/refit/internal/requirements"
)

// Task names reported to the observer.
const (
	TaskAnalysis    = "meeting_analysis"
	TaskImprovement = "code_improvement"
	TaskSummary     = "meeting_summary"
)

// CompletionClient is the contract the pipeline needs from the model
// backend. One call is one round trip.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Observer receives invocation lifecycle events. A nil observer is a valid,
// fully functional configuration.
type Observer interface {
	OnInvocationStart(task string)
	OnInvocationEnd(task string, success bool, elapsed time.Duration)
}

// Pipeline runs the LLM tasks. Errors from the backend never propagate to
// the caller as errors; every method returns a well-formed ModelResponse.
type Pipeline struct {
	llm         CompletionClient
	temperature float64
	observer    Observer
	logger      *slog.Logger
}

type Option func(*Pipeline)

// WithObserver attaches an invocation observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

func New(llm CompletionClient, temperature float64, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		llm:         llm,
		temperature: temperature,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze turns meeting text into structured UI/UX requirements. A reply
// without extractable JSON is still a success; the raw text carries the
// answer.
func (p *Pipeline) Analyze(ctx context.Context, meetingText, focusArea string) ModelResponse {
	if strings.TrimSpace(meetingText) == "" {
		return failure("meeting text is empty")
	}

	p.logger.Info("analyzing meeting text",
		"text_len", len(meetingText),
		"focus_area", focusArea,
	)

	return p.run(ctx, TaskAnalysis, prompts.AnalysisSystem(), prompts.AnalysisUser(meetingText, focusArea), true)
}

// Improve applies requirements to the current code. ImprovedCode in the
// result is an opaque full replacement; the pipeline does not diff it or
// verify it still parses as the claimed dialect.
func (p *Pipeline) Improve(ctx context.Context, reqs requirements.Parsed, currentCode string, d dialect.Dialect, focusArea string) ModelResponse {
	if strings.TrimSpace(currentCode) == "" {
		return failure("current code is empty")
	}
	if reqs.IsEmpty() {
		return failure("requirements are empty")
	}
	if d == "" {
		d = dialect.Detect(currentCode)
	}

	p.logger.Info("improving code",
		"dialect", d.String(),
		"code_len", len(currentCode),
		"requirements_format", string(reqs.Format),
		"focus_area", focusArea,
	)

	system := prompts.ImprovementSystem(d, focusArea)
	user := prompts.ImprovementUser(reqs.ForPrompt(), currentCode, d)
	return p.run(ctx, TaskImprovement, system, user, true)
}

// ImproveText is Improve for raw requirement text: the text is classified
// first, preserving whichever of the three formats it arrived in.
func (p *Pipeline) ImproveText(ctx context.Context, requirementsText, currentCode string, d dialect.Dialect, focusArea string) ModelResponse {
	return p.Improve(ctx, requirements.Classify(requirementsText), currentCode, d, focusArea)
}

// Summarize produces a Markdown summary of a transcript. This is a prose
// task: no JSON extraction, the answer lives in Raw.
func (p *Pipeline) Summarize(ctx context.Context, transcript string) ModelResponse {
	if strings.TrimSpace(transcript) == "" {
		return failure("transcript is empty")
	}

	p.logger.Info("summarizing transcript", "transcript_len", len(transcript))

	return p.run(ctx, TaskSummary, prompts.SummarySystem(), prompts.SummaryUser(transcript), false)
}

// run performs the single model round trip shared by all tasks. Whatever
// goes wrong inside the backend, including a panic, comes back as a tagged
// failure response.
func (p *Pipeline) run(ctx context.Context, task, system, user string, extractJSON bool) (resp ModelResponse) {
	if p.observer != nil {
		p.observer.OnInvocationStart(task)
	}
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("model backend panicked", "task", task, "panic", r)
			resp = failure(fmt.Sprintf("model invocation panicked: %v", r))
		}
		if p.observer != nil {
			p.observer.OnInvocationEnd(task, resp.Success, time.Since(started))
		}
	}()

	raw, err := p.llm.Complete(ctx, system, user, p.temperature)
	if err != nil {
		p.logger.Error("model invocation failed", "task", task, "error", err)
		return failure(err.Error())
	}

	resp = ModelResponse{Success: true, Raw: raw}
	if extractJSON {
		resp.Data = extract.JSON(raw)
		if resp.Data == nil {
			p.logger.Warn("model reply had no extractable JSON", "task", task, "raw_len", len(raw))
		}
	}
	return resp
}
