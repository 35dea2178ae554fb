package catalog

import (
	"sort"
	"strings"
)

// Suggestion defaults used by the zero-result search path.
const (
	DefaultSimilarityThreshold = 0.6
	DefaultMaxSuggestions      = 3
)

// levenshtein computes the classic edit distance between two rune
// sequences with the standard dynamic-programming matrix, kept to two
// rows. O(n*m) time, O(n) space.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := 0; i <= len(a); i++ {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min3(
				curr[i-1]+1,    // deletion
				prev[i]+1,      // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Similarity maps edit distance into [0,1]: 1 - distance/max(len). Two
// empty strings are defined as identical. Comparison is case-insensitive.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// FindSimilarNames computes up to max "did you mean" candidates for a
// search that produced zero results, drawn from the full unfiltered name
// universe. Candidates must reach the similarity threshold and differ from
// the term itself; ties keep input order (stable sort). Terms shorter than
// two runes return nothing.
func FindSimilarNames(term string, names []string, threshold float64, max int) []string {
	if strings.TrimSpace(term) == "" || len([]rune(term)) < 2 {
		return nil
	}

	type scored struct {
		name       string
		similarity float64
	}

	var candidates []scored
	lowerTerm := strings.ToLower(term)
	for _, name := range names {
		sim := Similarity(term, name)
		if sim >= threshold && strings.ToLower(name) != lowerTerm {
			candidates = append(candidates, scored{name: name, similarity: sim})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.name
	}
	return suggestions
}
