// Package agent routes free-form questions to capability tools. Tool
// selection is delegated to the model: it is shown the tool catalog and
// either picks a tool or answers directly.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uxforge/refit/internal/extract"
	"github.com/uxforge/refit/internal/pipeline"
)

const (
	maxIterations = 3
	maxWallClock  = 60 * time.Second

	// DirectAnswer is the provenance sentinel reported when no tool fired.
	DirectAnswer = "direct-answer"

	ceilingNote = "\n\n_Note: the answer was concluded early because the tool budget was exhausted._"
)

// State is the router's terminal or intermediate state.
type State string

const (
	StateIdle          State = "idle"
	StateRouting       State = "routing"
	StateToolExecuting State = "tool-executing"
	StateAnswered      State = "answered"
	StateFailed        State = "failed"
)

// Tool is one capability the router can invoke. Run never returns an error:
// tools catch their own failures and answer with a user-legible string.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context, query string) string
}

// Result is the outcome of one routed question. Tools lists every distinct
// tool invoked, deduplicated, in invocation order; when zero tools fired it
// holds the DirectAnswer sentinel.
type Result struct {
	State          State    `json:"state"`
	Answer         string   `json:"answer,omitempty"`
	Tools          []string `json:"tools"`
	Error          string   `json:"error,omitempty"`
	CeilingLimited bool     `json:"ceiling_limited,omitempty"`
}

// Router drives the tool-selection loop within fixed iteration and
// wall-clock ceilings. Hitting a ceiling concludes the episode with
// whatever has been produced; it is not a failure.
type Router struct {
	llm         pipeline.CompletionClient
	tools       []Tool
	temperature float64
	logger      *slog.Logger
	now         func() time.Time
}

func NewRouter(llm pipeline.CompletionClient, tools []Tool, temperature float64, logger *slog.Logger) *Router {
	return &Router{
		llm:         llm,
		tools:       tools,
		temperature: temperature,
		logger:      logger,
		now:         time.Now,
	}
}

type observation struct {
	tool   string
	input  string
	output string
}

// Ask answers a free-form question, invoking at most maxIterations tools.
func (r *Router) Ask(ctx context.Context, question string) Result {
	started := r.now()
	var (
		trace        []string
		observations []observation
	)

	for i := 0; i < maxIterations; i++ {
		if r.now().Sub(started) > maxWallClock {
			r.logger.Warn("agent wall-clock ceiling reached", "iterations", i)
			return r.concludeCeiling(trace, observations)
		}

		reply, err := r.llm.Complete(ctx, routingSystem(r.tools), routingUser(question, observations), r.temperature)
		if err != nil {
			// Only a failed routing completion fails the episode; the
			// trace collected so far is still reported.
			r.logger.Error("agent routing failed", "error", err, "iterations", i)
			return Result{
				State: StateFailed,
				Tools: provenance(trace),
				Error: err.Error(),
			}
		}

		data := extract.JSON(reply)
		if data == nil {
			// No parseable action: the reply itself is the answer.
			return Result{State: StateAnswered, Answer: reply, Tools: provenance(trace)}
		}

		if answer, ok := data["answer"].(string); ok && answer != "" {
			return Result{State: StateAnswered, Answer: answer, Tools: provenance(trace)}
		}

		name, _ := data["tool"].(string)
		input, _ := data["input"].(string)
		if input == "" {
			input = question
		}

		tool := r.findTool(name)
		if tool == nil {
			observations = append(observations, observation{
				tool:   name,
				input:  input,
				output: fmt.Sprintf("no such tool %q; choose from the catalog or answer directly", name),
			})
			continue
		}

		r.logger.Info("agent invoking tool", "tool", tool.Name(), "iteration", i+1)
		trace = append(trace, tool.Name())
		output := tool.Run(ctx, input)
		observations = append(observations, observation{tool: tool.Name(), input: input, output: output})
	}

	r.logger.Warn("agent iteration ceiling reached", "iterations", maxIterations)
	return r.concludeCeiling(trace, observations)
}

// Advise reframes meeting notes as a question for the router, matching the
// ask-from-transcript flow.
func (r *Router) Advise(ctx context.Context, meetingText string) Result {
	question := fmt.Sprintf("Based on the following meeting notes, give UI/UX improvement advice:\n\n%s", meetingText)
	return r.Ask(ctx, question)
}

// concludeCeiling ends the episode in answered state with best-effort
// output assembled from the tool results gathered so far.
func (r *Router) concludeCeiling(trace []string, observations []observation) Result {
	var parts []string
	for _, obs := range observations {
		if obs.output != "" {
			parts = append(parts, obs.output)
		}
	}
	answer := strings.Join(parts, "\n\n")
	if answer == "" {
		answer = "No answer could be produced within the tool budget. Please rephrase the question and try again."
	}
	return Result{
		State:          StateAnswered,
		Answer:         answer + ceilingNote,
		Tools:          provenance(trace),
		CeilingLimited: true,
	}
}

func (r *Router) findTool(name string) Tool {
	for _, t := range r.tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// provenance deduplicates the trace preserving invocation order.
func provenance(trace []string) []string {
	if len(trace) == 0 {
		return []string{DirectAnswer}
	}
	seen := make(map[string]bool, len(trace))
	out := make([]string, 0, len(trace))
	for _, name := range trace {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func routingSystem(tools []Tool) string {
	var catalog strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&catalog, "- %s: %s\n", t.Name(), t.Description())
	}

	return fmt.Sprintf(`You are a UI/UX expert assistant. To answer the user's question you may use the following tools:

%s
Decision criteria:
- UI/UX questions needing concrete design advice -> guideline_lookup
- Requests to write UI text or copy -> microcopy_generation
- Questions needing current trends or real-time information -> web_search
- Meeting-note analysis or advice requests -> guideline_lookup (interpret in a UI/UX context)

Reply with a single JSON object and nothing else.
To invoke a tool: {"tool": "<tool name>", "input": "<query for the tool>"}
To answer directly from the results so far: {"answer": "<final answer>"}

Identify the core intent of the question and pick the most suitable tool.`, catalog.String())
}

func routingUser(question string, observations []observation) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	for _, obs := range observations {
		fmt.Fprintf(&b, "\n\nTool %s was invoked with input %q and returned:\n%s", obs.tool, obs.input, obs.output)
	}
	if len(observations) > 0 {
		b.WriteString("\n\nIf the results above are sufficient, answer now; otherwise invoke another tool.")
	}
	return b.String()
}
