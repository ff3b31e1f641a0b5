package dialect

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Dialect
	}{
		{"react import", `import React from 'react';`, React},
		{"react jsx marker", "const App = () => <div/>; // app.jsx", React},
		{"jsp scriptlet", `<% String name = request.getParameter("name"); %>`, JSP},
		{"html doctype", "<!DOCTYPE html><body></body>", HTML},
		{"html tag", "<HTML><body></body></HTML>", HTML},
		{"javascript dom", "function resize() { document.getElementById('x'); }", JavaScript},
		{"javascript window", "function init() { window.addEventListener('load', go); }", JavaScript},
		{"vue sfc", "<template><div/></template><script>export default {}</script>", Vue},
		{"angular decorator", "@Component({selector: 'app-root'}) export class AppComponent {}", Angular},
		{"empty falls back to html", "", HTML},
		{"plain text falls back to html", "hello world", HTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.code); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}

func TestDetect_HTMLBeatsVue(t *testing.T) {
	// Markup rules run before the Vue rule, so an HTML page embedding a
	// template/script pair is still HTML.
	code := "<html><template><script></script></template></html>"
	if got := Detect(code); got != HTML {
		t.Errorf("expected html, got %s", got)
	}
}

func TestParse(t *testing.T) {
	if d, ok := Parse("React"); !ok || d != React {
		t.Errorf("Parse(React) = %s, %v", d, ok)
	}
	if d, ok := Parse(" vue "); !ok || d != Vue {
		t.Errorf("Parse(vue) = %s, %v", d, ok)
	}
	if _, ok := Parse("cobol"); ok {
		t.Error("expected unknown dialect to report false")
	}
	if _, ok := Parse(""); ok {
		t.Error("expected empty dialect to report false")
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		d    Dialect
		want string
	}{
		{React, "jsx"},
		{HTML, "html"},
		{JavaScript, "js"},
		{JSP, "jsp"},
		{Vue, "vue"},
		{Angular, "ts"},
		{Dialect("fortran"), "txt"},
	}
	for _, tt := range tests {
		if got := tt.d.Ext(); got != tt.want {
			t.Errorf("%s.Ext() = %s, want %s", tt.d, got, tt.want)
		}
	}
}
