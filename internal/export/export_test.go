package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/uxforge/refit/internal/dialect"
	"github.com/uxforge/refit/internal/pipeline"
)

func sampleRequirements() pipeline.RequirementSet {
	return pipeline.RequirementSet{
		UIRequirements: []pipeline.UIRequirement{
			{
				Category:           "button",
				CurrentIssue:       "로그인 버튼이 눈에 띄지 않음",
				ImprovementRequest: "로그인 버튼을 상단으로 이동",
				Priority:           "high",
				TechnicalDetail:    "Move the button into the header bar",
			},
		},
		UserFeedback: []pipeline.UserFeedback{
			{Feedback: "찾기 어렵다", PainPoint: "navigation", SuggestedSolution: "상단 고정"},
		},
		Summary: pipeline.AnalysisSummary{
			TotalRequirements: 1,
			HighPriorityCount: 1,
			MainFocusAreas:    pipeline.FlexStrings{"layout"},
		},
	}
}

func TestAnalysisJSONPreservesMultibyte(t *testing.T) {
	data, err := AnalysisJSON(sampleRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "로그인 버튼") {
		t.Errorf("multibyte text was escaped: %s", data)
	}
	var rs pipeline.RequirementSet
	if err := json.Unmarshal(data, &rs); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(rs.UIRequirements) != 1 {
		t.Errorf("round trip lost requirements")
	}
}

func TestAnalysisMarkdownSections(t *testing.T) {
	md := AnalysisMarkdown(sampleRequirements())
	for _, want := range []string{
		"# Meeting Analysis Result",
		"## UI/UX Requirements",
		"로그인 버튼을 상단으로 이동",
		"## User Feedback",
		"## Summary",
		"**Total requirements:** 1",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestAnalysisMarkdownEmptySet(t *testing.T) {
	md := AnalysisMarkdown(pipeline.RequirementSet{})
	if !strings.Contains(md, "No structured requirements were extracted.") {
		t.Errorf("empty set should still render: %s", md)
	}
}

func TestImprovementReport(t *testing.T) {
	ir := pipeline.ImprovementResult{
		AppliedChanges: []pipeline.AppliedChange{
			{Requirement: "Move the login button", ChangeDescription: "Relocated to the header", CodeSection: "Header.jsx"},
		},
		TechnicalImprovements: pipeline.FlexStrings{"Extracted a Button component"},
		Summary:               pipeline.ImprovementSummary{TotalChanges: 1},
	}
	md := ImprovementReport(ir, dialect.React)
	for _, want := range []string{
		"# Code Improvement Report",
		"**Language:** REACT",
		"Move the login button",
		"Extracted a Button component",
		"**Total changes:** 1",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestImprovedCodeName(t *testing.T) {
	cases := map[dialect.Dialect]string{
		dialect.React:      "improved_code.jsx",
		dialect.JSP:        "improved_code.jsp",
		dialect.HTML:       "improved_code.html",
		dialect.JavaScript: "improved_code.js",
		dialect.Vue:        "improved_code.vue",
		dialect.Angular:    "improved_code.ts",
	}
	for d, want := range cases {
		if got := ImprovedCodeName(d); got != want {
			t.Errorf("ImprovedCodeName(%s) = %s, want %s", d, got, want)
		}
	}
}

func TestAnswerMarkdown(t *testing.T) {
	md := AnswerMarkdown("버튼 위치?", "Put it top-right.", []string{"guideline_lookup"})
	if !strings.Contains(md, "버튼 위치?") || !strings.Contains(md, "guideline_lookup") {
		t.Errorf("answer export incomplete: %s", md)
	}
}
