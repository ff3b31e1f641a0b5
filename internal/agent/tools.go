package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/uxforge/refit/internal/pipeline"
)

// Retriever fetches ranked guideline snippets from an external index.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// Searcher queries an external web-search backend.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

const guidelineSystem = `You are a UI/UX expert assistant. Combine the retrieved guidelines with your own design judgment to give the user the best solution.

Principles:
1. Use the retrieved guidelines as the starting point, but interpret and adapt them when they do not fully match the user's situation; fill gaps creatively.
2. Structure the answer as: guideline-based analysis, creative suggestions, combined recommendation with implementation priorities.
3. Balance expertise with approachability: concrete, actionable advice with examples and step-by-step guidance.
4. Do not copy the guidelines verbatim, do not ignore basic UX principles in the name of creativity, and do not propose solutions that disregard the user's practical constraints.`

// GuidelineTool answers UI/UX questions grounded in retrieved guideline
// snippets.
type GuidelineTool struct {
	llm         pipeline.CompletionClient
	retriever   Retriever
	topK        int
	temperature float64
}

func NewGuidelineTool(llm pipeline.CompletionClient, retriever Retriever, topK int, temperature float64) *GuidelineTool {
	return &GuidelineTool{llm: llm, retriever: retriever, topK: topK, temperature: temperature}
}

func (t *GuidelineTool) Name() string { return "guideline_lookup" }

func (t *GuidelineTool) Description() string {
	return "answers questions about UI/UX design, user experience, usability and accessibility, grounded in the design guideline index"
}

func (t *GuidelineTool) Run(ctx context.Context, query string) string {
	snippets, err := t.retriever.Retrieve(ctx, query, t.topK)
	if err != nil {
		return fmt.Sprintf("An error occurred while searching UI/UX guidelines: %v", err)
	}

	user := fmt.Sprintf("Guidelines:\n%s\n\nQuestion: %s", strings.Join(snippets, "\n\n"), query)
	answer, err := t.llm.Complete(ctx, guidelineSystem, user, t.temperature)
	if err != nil {
		return fmt.Sprintf("An error occurred while answering from the guidelines: %v", err)
	}
	return answer
}

const microcopySystem = `You are a UI/UX expert assistant. Write microcopy matching the user's request.

Microcopy guidelines:
1. Concise and clear
2. User-friendly language
3. Consistent with the brand tone
4. Emotionally appropriate for the situation

Examples:
- Button text: "Get started"
- Error message: "Please check the information you entered."

Write microcopy for the request following the guidelines above.`

// MicrocopyTool generates UI text directly, with no retrieval.
type MicrocopyTool struct {
	llm         pipeline.CompletionClient
	temperature float64
}

func NewMicrocopyTool(llm pipeline.CompletionClient, temperature float64) *MicrocopyTool {
	return &MicrocopyTool{llm: llm, temperature: temperature}
}

func (t *MicrocopyTool) Name() string { return "microcopy_generation" }

func (t *MicrocopyTool) Description() string {
	return "writes UI text such as button labels, error messages, guidance copy and menu names"
}

func (t *MicrocopyTool) Run(ctx context.Context, query string) string {
	answer, err := t.llm.Complete(ctx, microcopySystem, query, t.temperature)
	if err != nil {
		return fmt.Sprintf("An error occurred while writing microcopy: %v", err)
	}
	return answer
}

// WebSearchTool queries the web-search backend and returns a serialized
// summary of the top results.
type WebSearchTool struct {
	searcher   Searcher
	maxResults int
}

func NewWebSearchTool(searcher Searcher, maxResults int) *WebSearchTool {
	return &WebSearchTool{searcher: searcher, maxResults: maxResults}
}

func (t *WebSearchTool) Name() string { return "web_search" }

func (t *WebSearchTool) Description() string {
	return "searches the web for current trends, market information and other real-time questions outside the guideline index"
}

func (t *WebSearchTool) Run(ctx context.Context, query string) string {
	results, err := t.searcher.Search(ctx, query, t.maxResults)
	if err != nil {
		return fmt.Sprintf("An error occurred during web search: %v", err)
	}
	if len(results) == 0 {
		return "Web search returned no results."
	}

	var b strings.Builder
	for i, res := range results {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, res.Title, res.Snippet, res.URL)
	}
	return strings.TrimSpace(b.String())
}
