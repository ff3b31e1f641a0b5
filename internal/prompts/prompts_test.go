package prompts

import (
	"strings"
	"testing"

	"github.com/uxforge/refit/internal/dialect"
)

func TestAnalysisUser_FocusArea(t *testing.T) {
	without := AnalysisUser("meeting text", "")
	if strings.Contains(without, "particular attention") {
		t.Error("expected no focus hint when focus area is empty")
	}

	with := AnalysisUser("meeting text", "button size")
	if !strings.Contains(with, "button size") {
		t.Errorf("expected focus area embedded, got %q", with)
	}
	if !strings.Contains(with, "meeting text") {
		t.Errorf("expected meeting text embedded, got %q", with)
	}
}

func TestAnalysisSystem_Shape(t *testing.T) {
	sys := AnalysisSystem()
	for _, key := range []string{"ui_requirements", "user_feedback", "summary", "```json"} {
		if !strings.Contains(sys, key) {
			t.Errorf("analysis system prompt missing %q", key)
		}
	}
}

func TestImprovementSystem_DialectAndFocus(t *testing.T) {
	sys := ImprovementSystem(dialect.React, "accessibility")
	if !strings.Contains(sys, "REACT code improvement expert") {
		t.Errorf("expected dialect in instructional text, got %q", sys[:80])
	}
	if !strings.Contains(sys, "accessibility") {
		t.Error("expected focus area in prompt")
	}
	for _, key := range []string{"applied_changes", "improved_code", "summary"} {
		if !strings.Contains(sys, key) {
			t.Errorf("improvement system prompt missing %q", key)
		}
	}

	plain := ImprovementSystem(dialect.HTML, "")
	if strings.Contains(plain, "Special focus area") {
		t.Error("expected no focus section when focus area is empty")
	}
}

func TestImprovementSystem_Deterministic(t *testing.T) {
	a := ImprovementSystem(dialect.Vue, "layout")
	b := ImprovementSystem(dialect.Vue, "layout")
	if a != b {
		t.Error("expected identical prompts for identical inputs")
	}
}

func TestImprovementUser_FencedCode(t *testing.T) {
	out := ImprovementUser("**Text requirements:**\nbigger button", "<button>로그인</button>", dialect.HTML)

	if !strings.Contains(out, "```html\n<button>로그인</button>\n```") {
		t.Errorf("expected code fenced with dialect tag, got %q", out)
	}
	if !strings.Contains(out, "Current code (HTML)") {
		t.Errorf("expected upper-cased dialect label, got %q", out)
	}
	if !strings.Contains(out, "bigger button") {
		t.Error("expected requirements embedded")
	}
}

func TestSummaryUser(t *testing.T) {
	out := SummaryUser("we talked about buttons")
	if !strings.Contains(out, "we talked about buttons") {
		t.Errorf("expected transcript embedded, got %q", out)
	}
}
