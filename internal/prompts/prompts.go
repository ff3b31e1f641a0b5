// Package prompts builds the system and user prompts for each LLM task.
// Builders are pure string functions: no model calls, no I/O, fully
// reproducible for the same inputs.
package prompts

import (
	"fmt"

	"github.com/uxforge/refit/internal/dialect"
)

const analysisSystem = `You are an expert at analyzing meeting notes to identify UI/UX improvement requirements.

**Analysis goals:**
1. Extract UI/UX improvement items from the meeting notes
2. Separate user feedback from development requirements
3. Derive concrete, actionable improvements

**Output format (JSON):**
` + "```json" + `
{
  "ui_requirements": [
    {
      "category": "one of button/interface/layout/color/text/form/navigation",
      "current_issue": "the current problem",
      "improvement_request": "the requested improvement",
      "priority": "high/medium/low",
      "technical_detail": "concrete implementation direction",
      "user_impact": "effect on users"
    }
  ],
  "user_feedback": [
    {
      "feedback": "specific feedback raised by users",
      "pain_point": "user inconvenience",
      "suggested_solution": "proposed resolution"
    }
  ],
  "summary": {
    "total_requirements": "total number of requirements",
    "high_priority_count": "number of high-priority items",
    "main_focus_areas": ["main improvement areas"],
    "expected_outcome": "expected improvement effect"
  }
}
` + "```" + `

**Analysis considerations:**
- Interpret unclear requirements reasonably
- Prioritize from the user-experience point of view
- Weigh development complexity against user impact
- Propose concrete, actionable improvements`

// AnalysisSystem returns the system prompt for the meeting-analysis task.
func AnalysisSystem() string {
	return analysisSystem
}

// AnalysisUser embeds the meeting text, with an optional focus-area hint.
func AnalysisUser(meetingText, focusArea string) string {
	prompt := fmt.Sprintf("Analyze the following meeting notes and derive UI/UX improvement requirements:\n\n%s", meetingText)
	if focusArea != "" {
		prompt += fmt.Sprintf("\n\nPay particular attention to: %s", focusArea)
	}
	return prompt
}

// ImprovementSystem returns the system prompt for the code-improvement task,
// parameterized by the target dialect and focus area.
func ImprovementSystem(d dialect.Dialect, focusArea string) string {
	prompt := fmt.Sprintf(`You are a %[1]s code improvement expert.

**Role:**
Apply UI/UX requirements derived from meeting notes directly to the existing code.

**Procedure:**
1. Reflect the requirements directly in the current code
2. Apply concrete code changes per requirement
3. Write complete code with accessibility, responsiveness and usability in mind

**Output format:**
`+"```json"+`
{
  "applied_changes": [
    {
      "requirement": "requirement that was applied",
      "change_description": "what was changed, concretely",
      "code_section": "the key modified code section",
      "before_after": "before/after comparison"
    }
  ],
  "improved_code": "the improved, complete, runnable code",
  "technical_improvements": [
    "performance improvements",
    "accessibility improvements",
    "code quality improvements"
  ],
  "summary": {
    "total_changes": "total number of changes",
    "main_improvements": ["the main improvements"],
    "expected_benefits": "expected user-experience benefit"
  }
}
`+"```"+`

**Considerations:**
- Apply current %[1]s best practices
- Reflect the requirements in the code exactly
- Keep existing behavior while improving it
- Consider cross-browser compatibility
- Follow accessibility (WCAG) guidelines
- Apply responsive design
- Provide complete, runnable code`, d.Upper())

	if focusArea != "" {
		prompt += fmt.Sprintf("\n\n**Special focus area:** concentrate the improvement on %s.", focusArea)
	}
	return prompt
}

// ImprovementUser embeds the formatted requirements plus the current code
// fenced with the dialect tag.
func ImprovementUser(formattedRequirements, currentCode string, d dialect.Dialect) string {
	return fmt.Sprintf(`%s

**Current code (%s):**
`+"```%s\n%s\n```"+`

Improve the current code to satisfy the requirements above.
Apply each ui_requirements item to the code concretely.`,
		formattedRequirements, d.Upper(), d, currentCode)
}

const summarySystem = `You are an expert at summarizing meeting recordings.

Summarize the transcript as Markdown with these sections:
1. Key discussion topics
2. Decisions made
3. Action items with owners where mentioned
4. Open questions

Keep the original language of the transcript. Be faithful to what was said;
do not invent content that is not in the transcript.`

// SummarySystem returns the system prompt for the transcript-summary task.
func SummarySystem() string {
	return summarySystem
}

// SummaryUser embeds the transcript for summarization.
func SummaryUser(transcript string) string {
	return fmt.Sprintf("Summarize the following meeting transcript:\n\n%s", transcript)
}
