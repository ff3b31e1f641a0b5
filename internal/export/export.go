// Package export renders session artifacts into downloadable files:
// analysis results as JSON or Markdown, improved code with a
// dialect-appropriate extension, and report documents.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/uxforge/refit/internal/dialect"
	"github.com/uxforge/refit/internal/pipeline"
)

// Download filenames. Kept stable so saved artifacts line up across
// sessions.
const (
	AnalysisJSONName      = "meeting_analysis_result.json"
	AnalysisMarkdownName  = "meeting_analysis_result.md"
	ImprovementReportName = "code_improvement_report.md"
	TranscriptName        = "meeting_transcript.txt"
	SummaryName           = "meeting_summary.md"
	AnswerName            = "ai_answer.md"
)

// ImprovedCodeName returns the filename for exported code in the given
// dialect.
func ImprovedCodeName(d dialect.Dialect) string {
	return "improved_code." + d.Ext()
}

// AnalysisJSON renders the structured analysis as indented JSON with
// multibyte text left unescaped.
func AnalysisJSON(rs pipeline.RequirementSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return buf.Bytes(), nil
}

// AnalysisMarkdown renders the structured analysis as a readable report.
func AnalysisMarkdown(rs pipeline.RequirementSet) string {
	var b strings.Builder
	b.WriteString("# Meeting Analysis Result\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04")))

	b.WriteString("## UI/UX Requirements\n\n")
	if len(rs.UIRequirements) == 0 {
		b.WriteString("No structured requirements were extracted.\n\n")
	}
	for i, req := range rs.UIRequirements {
		title := req.ImprovementRequest
		if title == "" {
			title = req.CurrentIssue
		}
		b.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, title))
		writeField(&b, "Category", req.Category)
		writeField(&b, "Priority", req.Priority)
		writeField(&b, "Current issue", req.CurrentIssue)
		writeField(&b, "Technical detail", req.TechnicalDetail)
		writeField(&b, "User impact", req.UserImpact)
		b.WriteString("\n")
	}

	b.WriteString("## User Feedback\n\n")
	if len(rs.UserFeedback) == 0 {
		b.WriteString("No user feedback was extracted.\n\n")
	}
	for i, fb := range rs.UserFeedback {
		b.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, fb.Feedback))
		writeField(&b, "Pain point", fb.PainPoint)
		writeField(&b, "Suggested solution", fb.SuggestedSolution)
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	writeField(&b, "Total requirements", fmt.Sprintf("%d", rs.Summary.TotalRequirements))
	writeField(&b, "High priority", fmt.Sprintf("%d", rs.Summary.HighPriorityCount))
	if len(rs.Summary.MainFocusAreas) > 0 {
		writeField(&b, "Main focus areas", strings.Join(rs.Summary.MainFocusAreas, ", "))
	}
	writeField(&b, "Expected outcome", rs.Summary.ExpectedOutcome)
	return b.String()
}

// ImprovementReport renders the improvement run as a Markdown report.
// The improved code itself is exported separately.
func ImprovementReport(ir pipeline.ImprovementResult, d dialect.Dialect) string {
	var b strings.Builder
	b.WriteString("# Code Improvement Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04")))
	writeField(&b, "Language", d.Upper())
	b.WriteString("\n## Applied Changes\n\n")
	if len(ir.AppliedChanges) == 0 {
		b.WriteString("No changes were recorded.\n\n")
	}
	for i, ch := range ir.AppliedChanges {
		b.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, ch.Requirement))
		writeField(&b, "Change", ch.ChangeDescription)
		writeField(&b, "Code section", ch.CodeSection)
		writeField(&b, "Before/after", ch.BeforeAfter)
		b.WriteString("\n")
	}

	if len(ir.TechnicalImprovements) > 0 {
		b.WriteString("## Technical Improvements\n\n")
		for _, ti := range ir.TechnicalImprovements {
			b.WriteString(fmt.Sprintf("- %s\n", ti))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	writeField(&b, "Total changes", fmt.Sprintf("%d", ir.Summary.TotalChanges))
	if len(ir.Summary.MainImprovements) > 0 {
		writeField(&b, "Main improvements", strings.Join(ir.Summary.MainImprovements, ", "))
	}
	writeField(&b, "Expected benefits", ir.Summary.ExpectedBenefits)
	return b.String()
}

// AnswerMarkdown renders an assistant answer with its tool provenance.
func AnswerMarkdown(question, answer string, tools []string) string {
	var b strings.Builder
	b.WriteString("# AI Answer\n\n")
	b.WriteString(fmt.Sprintf("**Question:** %s\n\n", question))
	b.WriteString(answer)
	b.WriteString("\n\n---\n")
	b.WriteString(fmt.Sprintf("Tools used: %s\n", strings.Join(tools, ", ")))
	return b.String()
}

// SummaryMarkdown renders a meeting summary document.
func SummaryMarkdown(summary string) string {
	return "# Meeting Summary\n\n" + summary + "\n"
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("- **%s:** %s\n", label, value))
}
