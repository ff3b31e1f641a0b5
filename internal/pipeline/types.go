package pipeline

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ModelResponse is the universal wrapper returned by every pipeline stage
// that calls the model. Data is populated only when JSON extraction
// succeeds; Raw always preserves the model text so callers can degrade to
// unstructured display. Data == nil with Success == true is a valid terminal
// state, not a failure.
type ModelResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Raw     string         `json:"raw,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func failure(msg string) ModelResponse {
	return ModelResponse{Success: false, Error: msg}
}

// FlexInt decodes a JSON number or a numeric string. Models report counts
// both ways; unparseable values decode to zero rather than erroring because
// model-reported counts are advisory.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var fl float64
	if err := json.Unmarshal(data, &fl); err == nil {
		*f = FlexInt(int(fl))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = FlexInt(n)
		}
	}
	return nil
}

// FlexStrings decodes a JSON string array or a single string.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		*f = []string{s}
	}
	return nil
}

// UIRequirement is one structured improvement item.
type UIRequirement struct {
	Category           string `json:"category"`
	CurrentIssue       string `json:"current_issue"`
	ImprovementRequest string `json:"improvement_request"`
	Priority           string `json:"priority"`
	TechnicalDetail    string `json:"technical_detail"`
	UserImpact         string `json:"user_impact,omitempty"`
}

// UserFeedback is one piece of user feedback from the meeting.
type UserFeedback struct {
	Feedback          string `json:"feedback"`
	PainPoint         string `json:"pain_point"`
	SuggestedSolution string `json:"suggested_solution"`
}

// AnalysisSummary carries the model's own summary of the analysis. Counts
// are never validated against the requirement arrays.
type AnalysisSummary struct {
	TotalRequirements FlexInt     `json:"total_requirements"`
	HighPriorityCount FlexInt     `json:"high_priority_count"`
	MainFocusAreas    FlexStrings `json:"main_focus_areas"`
	ExpectedOutcome   string      `json:"expected_outcome,omitempty"`
}

// RequirementSet is the canonical structured requirement representation
// produced by analysis and consumed, unmutated, by improvement.
type RequirementSet struct {
	UIRequirements []UIRequirement `json:"ui_requirements"`
	UserFeedback   []UserFeedback  `json:"user_feedback"`
	Summary        AnalysisSummary `json:"summary"`
}

// AppliedChange records one requirement applied to the code.
type AppliedChange struct {
	Requirement       string `json:"requirement"`
	ChangeDescription string `json:"change_description"`
	CodeSection       string `json:"code_section"`
	BeforeAfter       string `json:"before_after,omitempty"`
}

// ImprovementSummary summarizes an improvement run. Older model replies emit
// a bare string here; that decodes into ExpectedBenefits.
type ImprovementSummary struct {
	TotalChanges     FlexInt     `json:"total_changes"`
	MainImprovements FlexStrings `json:"main_improvements"`
	ExpectedBenefits string      `json:"expected_benefits,omitempty"`
}

func (s *ImprovementSummary) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		s.ExpectedBenefits = text
		return nil
	}
	type plain ImprovementSummary
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*s = ImprovementSummary(p)
	return nil
}

// ImprovementResult is the structured output of the improvement pipeline.
// ImprovedCode is an opaque full replacement; the pipeline never diffs or
// validates it.
type ImprovementResult struct {
	AppliedChanges        []AppliedChange    `json:"applied_changes"`
	ImprovedCode          string             `json:"improved_code"`
	TechnicalImprovements FlexStrings        `json:"technical_improvements,omitempty"`
	Summary               ImprovementSummary `json:"summary"`
}

// DecodeRequirementSet converts extracted JSON into the typed view. Fields
// the model omitted keep their zero defaults; a nil map decodes to an empty
// set.
func DecodeRequirementSet(data map[string]any) RequirementSet {
	var rs RequirementSet
	decodeMap(data, &rs)
	return rs
}

// DecodeImprovementResult converts extracted JSON into the typed view.
func DecodeImprovementResult(data map[string]any) ImprovementResult {
	var ir ImprovementResult
	decodeMap(data, &ir)
	return ir
}

func decodeMap(data map[string]any, v any) {
	if data == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, v)
}
