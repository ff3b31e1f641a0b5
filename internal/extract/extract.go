// Package extract pulls JSON payloads out of raw model replies. The JSON
// contract is enforced only by prompt instruction, so extraction has to
// tolerate surrounding prose and missing fences.
package extract

import (
	"encoding/json"
	"regexp"
)

var (
	// fencedJSON matches a ```json fenced block, non-greedy so trailing
	// prose after the fence is ignored.
	fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	// trailingComma matches a trailing comma before ] or }, an artifact
	// models commonly emit.
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// JSON extracts a JSON object from raw model text. It tries a fenced
// ```json block first, then the whole reply. A nil result is not an error:
// the caller is expected to fall back to displaying the raw text.
func JSON(raw string) map[string]any {
	if m := fencedJSON.FindStringSubmatch(raw); len(m) > 1 {
		return parse(m[1])
	}
	return parse(raw)
}

func parse(s string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return obj
	}
	// Retry once with trailing commas stripped.
	cleaned := trailingComma.ReplaceAllString(s, "$1")
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil {
		return obj
	}
	return nil
}
