package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// StrictPolicy strips every tag from pasted email/chat content before
// it reaches the extractor.
var StrictPolicy *bluemonday.Policy

func init() {
	StrictPolicy = bluemonday.StrictPolicy()
}

// StripHTML removes all HTML markup and decodes entities, leaving
// plain text.
func StripHTML(content string) string {
	return html.UnescapeString(StrictPolicy.Sanitize(content))
}

// NormalizeContent prepares pasted content for keyword scanning: drop
// markup, trim each line, and collapse blank runs.
func NormalizeContent(content string) string {
	content = StripHTML(content)

	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" && len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// Snippet trims text to at most limit characters for use as a meeting
// description, breaking at a word boundary when possible.
func Snippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= limit {
		return text
	}
	if idx := strings.LastIndex(text[:limit], " "); idx > 0 {
		return text[:idx] + "..."
	}
	return text[:limit] + "..."
}
