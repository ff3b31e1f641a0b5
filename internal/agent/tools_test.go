package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubRetriever struct {
	snippets []string
	err      error
	lastTopK int
}

func (s *stubRetriever) Retrieve(_ context.Context, _ string, topK int) ([]string, error) {
	s.lastTopK = topK
	return s.snippets, s.err
}

type stubSearcher struct {
	results []SearchResult
	err     error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]SearchResult, error) {
	return s.results, s.err
}

type fixedLLM struct {
	reply    string
	err      error
	lastUser string
}

func (f *fixedLLM) Complete(_ context.Context, _, user string, _ float64) (string, error) {
	f.lastUser = user
	return f.reply, f.err
}

func TestGuidelineTool_GroundsAnswerInSnippets(t *testing.T) {
	llm := &fixedLLM{reply: "grounded answer"}
	ret := &stubRetriever{snippets: []string{"buttons need 44px targets", "use consistent spacing"}}
	tool := NewGuidelineTool(llm, ret, 3, 0.3)

	out := tool.Run(context.Background(), "how big should buttons be?")
	if out != "grounded answer" {
		t.Errorf("unexpected output %q", out)
	}
	if ret.lastTopK != 3 {
		t.Errorf("expected top-k 3, got %d", ret.lastTopK)
	}
	if !strings.Contains(llm.lastUser, "44px targets") {
		t.Error("expected snippets concatenated into the prompt")
	}
	if !strings.Contains(llm.lastUser, "how big should buttons be?") {
		t.Error("expected question in the prompt")
	}
}

func TestGuidelineTool_RetrieverErrorIsLegibleString(t *testing.T) {
	tool := NewGuidelineTool(&fixedLLM{}, &stubRetriever{err: errors.New("index unavailable")}, 3, 0.3)

	out := tool.Run(context.Background(), "q")
	if !strings.Contains(out, "index unavailable") {
		t.Errorf("expected error described in output, got %q", out)
	}
}

func TestGuidelineTool_CompletionErrorIsLegibleString(t *testing.T) {
	tool := NewGuidelineTool(&fixedLLM{err: errors.New("quota exceeded")}, &stubRetriever{snippets: []string{"s"}}, 3, 0.3)

	out := tool.Run(context.Background(), "q")
	if !strings.Contains(out, "quota exceeded") {
		t.Errorf("expected error described in output, got %q", out)
	}
}

func TestMicrocopyTool(t *testing.T) {
	tool := NewMicrocopyTool(&fixedLLM{reply: `"Get started"`}, 0.3)
	if out := tool.Run(context.Background(), "login button text"); out != `"Get started"` {
		t.Errorf("unexpected output %q", out)
	}

	failing := NewMicrocopyTool(&fixedLLM{err: errors.New("timeout")}, 0.3)
	if out := failing.Run(context.Background(), "q"); !strings.Contains(out, "timeout") {
		t.Errorf("expected error described in output, got %q", out)
	}
}

func TestWebSearchTool_SerializesResults(t *testing.T) {
	tool := NewWebSearchTool(&stubSearcher{results: []SearchResult{
		{Title: "2026 UI trends", Snippet: "glass morphism returns", URL: "https://example.com/trends"},
		{Title: "Design systems", Snippet: "tokens everywhere", URL: "https://example.com/ds"},
	}}, 3)

	out := tool.Run(context.Background(), "ui trends")
	if !strings.Contains(out, "1. 2026 UI trends") || !strings.Contains(out, "2. Design systems") {
		t.Errorf("expected numbered results, got %q", out)
	}
	if !strings.Contains(out, "https://example.com/trends") {
		t.Error("expected urls in serialized output")
	}
}

func TestWebSearchTool_EmptyAndError(t *testing.T) {
	empty := NewWebSearchTool(&stubSearcher{}, 3)
	if out := empty.Run(context.Background(), "q"); !strings.Contains(out, "no results") {
		t.Errorf("expected no-results message, got %q", out)
	}

	failing := NewWebSearchTool(&stubSearcher{err: errors.New("dns failure")}, 3)
	if out := failing.Run(context.Background(), "q"); !strings.Contains(out, "dns failure") {
		t.Errorf("expected error described in output, got %q", out)
	}
}
