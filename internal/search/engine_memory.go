package search

import (
	"context"
	"sort"
	"strings"

	"github.com/andreslomelig/NovaFolio/internal/pages"
)

// DocDirectory resolves a document id to its display name and case.
type DocDirectory interface {
	Lookup(ctx context.Context, docID string) (name, caseID string, ok bool)
}

// MemoryEngine approximates the Postgres trigram/full-text query over the
// in-memory page index. A page matches when the query occurs as a
// substring or when every query word occurs somewhere in the page.
type MemoryEngine struct {
	Pages *pages.MemoryRepo
	Docs  DocDirectory
}

// Search scans every indexed page and ranks matches by trigram similarity.
func (e *MemoryEngine) Search(ctx context.Context, q, caseID string, limit int) ([]Hit, error) {
	all, err := e.Pages.All(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(q)
	words := strings.Fields(term)

	type scored struct {
		hit   Hit
		score float64
	}
	var matches []scored
	for _, page := range all {
		text := strings.ToLower(page.Text)
		if !matchesQuery(text, term, words) {
			continue
		}
		name, docCase, ok := e.Docs.Lookup(ctx, page.DocID)
		if !ok {
			continue
		}
		if caseID != "" && docCase != caseID {
			continue
		}
		matches = append(matches, scored{
			hit: Hit{
				DocID:   page.DocID,
				Page:    page.Page,
				Snippet: Snippet(page.Text, q),
				DocName: name,
				CaseID:  docCase,
			},
			score: trigramSimilarity(text, term),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].hit.Page < matches[j].hit.Page
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, m.hit)
	}
	return hits, nil
}

func matchesQuery(text, term string, words []string) bool {
	if strings.Contains(text, term) {
		return true
	}
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

// trigramSimilarity computes Jaccard similarity over character trigrams,
// the same shape of score pg_trgm's similarity() produces.
func trigramSimilarity(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	var common int
	for t := range tb {
		if _, ok := ta[t]; ok {
			common++
		}
	}
	union := len(ta) + len(tb) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

func trigrams(s string) map[string]struct{} {
	padded := "  " + s + " "
	set := make(map[string]struct{})
	runes := []rune(padded)
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}

var _ Engine = (*MemoryEngine)(nil)
