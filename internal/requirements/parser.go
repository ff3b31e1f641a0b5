// Package requirements normalizes heterogeneous requirement input into the
// form the improvement prompt expects.
package requirements

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Format tags how a requirement payload was classified.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Parsed is the canonical representation of a requirement payload.
type Parsed struct {
	Format Format
	// JSON holds the parsed object when Format is FormatJSON.
	JSON map[string]any
	// Text holds the original text for markdown and free-text payloads.
	Text string
}

// Classify normalizes raw requirement text. Classification is syntactic,
// first match wins:
//  1. trimmed text bracketed by { } that parses as strict JSON
//  2. text containing "##" or "###" is markdown
//  3. everything else is free text
//
// Classify never fails: JSON-looking text that does not parse is demoted to
// free text so malformed input cannot block the pipeline.
func Classify(text string) Parsed {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			return Parsed{Format: FormatJSON, JSON: obj}
		}
	}

	if strings.Contains(trimmed, "##") {
		return Parsed{Format: FormatMarkdown, Text: trimmed}
	}

	return Parsed{Format: FormatText, Text: trimmed}
}

// FromObject wraps an already-structured requirement object, bypassing
// classification. Used when the caller hands over a RequirementSet produced
// by a previous analysis run.
func FromObject(obj map[string]any) Parsed {
	return Parsed{Format: FormatJSON, JSON: obj}
}

// IsEmpty reports whether the payload carries no usable content.
func (p Parsed) IsEmpty() bool {
	if p.Format == FormatJSON {
		return len(p.JSON) == 0
	}
	return strings.TrimSpace(p.Text) == ""
}

// ForPrompt renders the payload for embedding in the improvement user
// prompt, tagged with its detected format. The original structure is
// preserved rather than forced to JSON.
func (p Parsed) ForPrompt() string {
	switch p.Format {
	case FormatJSON:
		return fmt.Sprintf("**Structured requirements (JSON):**\n```json\n%s\n```", marshalPretty(p.JSON))
	case FormatMarkdown:
		return fmt.Sprintf("**Markdown requirements:**\n%s", p.Text)
	default:
		return fmt.Sprintf("**Text requirements:**\n%s", p.Text)
	}
}

// marshalPretty renders JSON with two-space indentation and non-ASCII text
// left intact, so Korean meeting content stays readable in prompts.
func marshalPretty(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}
