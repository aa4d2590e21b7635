package search

import "strings"

const (
	snippetLead = 50
	snippetLen  = 180
)

// Snippet cuts a short window of text around the first occurrence of q.
// When q does not literally occur (a full-text match on stemmed words),
// the window starts at the beginning of the page.
func Snippet(text, q string) string {
	start := 0
	if idx := strings.Index(strings.ToLower(text), strings.ToLower(q)); idx > snippetLead {
		start = idx - snippetLead
	}
	end := start + snippetLen
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
