package retrieval

import (
	"strings"
	"testing"
)

func TestChunkDocumentHeadings(t *testing.T) {
	doc := "# Buttons\n\nPrimary buttons sit bottom-right.\n\nUse one primary action per screen.\n\n## Forms\n\nGroup related fields."
	chunks := ChunkDocument("guide.md", doc)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Title != "Buttons" {
		t.Errorf("expected title Buttons, got %q", chunks[0].Title)
	}
	if !strings.Contains(chunks[0].Body, "one primary action") {
		t.Errorf("paragraphs under a heading should merge: %q", chunks[0].Body)
	}
	if chunks[1].Title != "Forms" {
		t.Errorf("expected title Forms, got %q", chunks[1].Title)
	}
}

func TestChunkDocumentNoHeadings(t *testing.T) {
	chunks := ChunkDocument("notes.txt", "Just one paragraph of advice.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Title != "notes.txt" {
		t.Errorf("fallback title should be the document title, got %q", chunks[0].Title)
	}
}

func TestChunkDocumentSplitsLongSections(t *testing.T) {
	para := strings.Repeat("Keep touch targets at least 44 pixels. ", 20)
	doc := "# Touch\n\n" + para + "\n\n" + para + "\n\n" + para
	chunks := ChunkDocument("guide.md", doc)

	if len(chunks) < 2 {
		t.Fatalf("expected the long section to split, got %d chunks", len(chunks))
	}
	for _, c := range chunks {
		if c.Title != "Touch" {
			t.Errorf("split chunks keep the section title, got %q", c.Title)
		}
	}
}

func TestChunkDocumentEmpty(t *testing.T) {
	if chunks := ChunkDocument("empty.md", "   \n\n  "); chunks != nil {
		t.Fatalf("expected nil for empty document, got %d chunks", len(chunks))
	}
}

func TestFingerprintNormalizes(t *testing.T) {
	a := DocChunk{Body: "Use Clear Labels."}
	b := DocChunk{Body: "  use clear labels.  "}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("fingerprint should ignore case and surrounding space")
	}
	c := DocChunk{Body: "Use different labels."}
	if a.Fingerprint() == c.Fingerprint() {
		t.Errorf("different bodies should not collide")
	}
}
