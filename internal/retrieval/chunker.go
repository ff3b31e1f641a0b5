package retrieval

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const maxChunkLen = 2000

// DocChunk is one index-ready slice of a guideline document.
type DocChunk struct {
	Title string
	Body  string
}

// ChunkDocument splits a guideline document into chunks for the
// full-text index. Markdown headings start a new chunk and become its
// title; sections longer than maxChunkLen are split on paragraph
// boundaries so a single chunk stays focused enough to rank well.
func ChunkDocument(title, doc string) []DocChunk {
	var chunks []DocChunk
	section := title
	var current []string
	currentLen := 0

	flush := func() {
		body := strings.TrimSpace(strings.Join(current, "\n\n"))
		if body != "" {
			chunks = append(chunks, DocChunk{Title: section, Body: body})
		}
		current = nil
		currentLen = 0
	}

	for _, para := range strings.Split(doc, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if heading, ok := parseHeading(para); ok {
			flush()
			section = heading
			continue
		}
		if currentLen+len(para) > maxChunkLen && currentLen > 0 {
			flush()
		}
		current = append(current, para)
		currentLen += len(para)
	}
	flush()
	return chunks
}

func parseHeading(para string) (string, bool) {
	if !strings.HasPrefix(para, "#") {
		return "", false
	}
	first, _, _ := strings.Cut(para, "\n")
	heading := strings.TrimSpace(strings.TrimLeft(first, "#"))
	if heading == "" {
		return "", false
	}
	return heading, true
}

// Fingerprint identifies a chunk body for duplicate skipping during
// seeding.
func (c DocChunk) Fingerprint() string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(c.Body))))
	return hex.EncodeToString(sum[:])
}
