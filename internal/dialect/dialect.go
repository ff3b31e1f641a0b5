// Package dialect classifies front-end code blobs into the fixed set of
// dialects the improvement pipeline understands.
package dialect

import "strings"

type Dialect string

const (
	HTML       Dialect = "html"
	React      Dialect = "react"
	JavaScript Dialect = "javascript"
	JSP        Dialect = "jsp"
	Vue        Dialect = "vue"
	Angular    Dialect = "angular"
)

// Parse resolves a caller-pinned dialect name. Unknown names report false so
// the caller can fall back to detection.
func Parse(s string) (Dialect, bool) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case HTML:
		return HTML, true
	case React:
		return React, true
	case JavaScript:
		return JavaScript, true
	case JSP:
		return JSP, true
	case Vue:
		return Vue, true
	case Angular:
		return Angular, true
	}
	return "", false
}

// Detect classifies a code blob by lexical markers, case-insensitive, in a
// fixed priority order. Markup signals are checked before generic scripting
// signals so script blocks embedded in HTML are not misread as standalone
// JavaScript. First match wins; the fallback is HTML.
func Detect(code string) Dialect {
	lower := strings.ToLower(code)

	switch {
	case strings.Contains(lower, "import react") ||
		strings.Contains(lower, "from react") ||
		strings.Contains(lower, "jsx"):
		return React
	case strings.Contains(code, "<%") && strings.Contains(code, "%>"):
		return JSP
	case strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype html"):
		return HTML
	case strings.Contains(lower, "function") &&
		(strings.Contains(lower, "document.") || strings.Contains(lower, "window.")):
		return JavaScript
	case strings.Contains(lower, "<template>") && strings.Contains(lower, "<script>"):
		return Vue
	case strings.Contains(lower, "component") && strings.Contains(code, "@"):
		return Angular
	default:
		return HTML
	}
}

// Ext returns the file extension used for downloaded code artifacts.
func (d Dialect) Ext() string {
	switch d {
	case React:
		return "jsx"
	case HTML:
		return "html"
	case JavaScript:
		return "js"
	case JSP:
		return "jsp"
	case Vue:
		return "vue"
	case Angular:
		return "ts"
	default:
		return "txt"
	}
}

// String implements fmt.Stringer.
func (d Dialect) String() string {
	return string(d)
}

// Upper returns the dialect name upper-cased for prompt text.
func (d Dialect) Upper() string {
	return strings.ToUpper(string(d))
}
