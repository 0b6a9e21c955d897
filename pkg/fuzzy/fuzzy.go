package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// LevenshteinDistance calculates the edit distance between two strings
// This measures how many single-character edits (insertions, deletions, or substitutions)
// are required to change one string into another
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(normalizeString(s1))
	r2 := []rune(normalizeString(s2))
	m, n := len(r1), len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// two rows are enough
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// Threshold is the typo tolerance for a query of this length
func Threshold(query string) int {
	switch l := len([]rune(query)); {
	case l <= 3:
		return 1
	case l >= 8:
		return 3
	default:
		return 2
	}
}

// Match checks if query fuzzy-matches text within a given threshold
// threshold is the maximum allowed edit distance
func Match(query, text string, threshold int) bool {
	query = normalizeString(query)
	text = normalizeString(text)
	if query == "" {
		return false
	}

	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:")
		if strings.HasPrefix(word, query) {
			return true
		}
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
	}
	return false
}

// RelevanceScore scores how relevant a summary is to a query
// Higher score = more relevant; 0 means no match.
// Searches the summary text and the names of the people involved.
func RelevanceScore(query, summary string, people []string) float64 {
	query = normalizeString(query)
	if query == "" {
		return 0
	}
	score := 0.0

	// Exact match in summary (highest weight)
	summaryNorm := normalizeString(summary)
	if strings.Contains(summaryNorm, query) {
		score += 100.0
		if containsWord(summaryNorm, query) {
			score += 50.0
		}
	} else {
		for _, word := range strings.Fields(summaryNorm) {
			word = strings.Trim(word, ".,!?;:")
			if dist := LevenshteinDistance(query, word); dist <= Threshold(query) {
				score += 50.0 - float64(dist)*15
			}
			if strings.HasPrefix(word, query) {
				score += 40.0
			}
		}
	}

	for _, person := range people {
		nameNorm := normalizeString(person)
		if strings.Contains(nameNorm, query) {
			score += 80.0
			if containsWord(nameNorm, query) {
				score += 30.0
			}
			continue
		}
		for _, word := range strings.Fields(nameNorm) {
			if dist := LevenshteinDistance(query, word); dist <= Threshold(query) {
				score += 40.0 - float64(dist)*12
			}
		}
	}

	return score
}

// normalizeString lowercases, strips diacritics and collapses whitespace
func normalizeString(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // Mn: Mark, nonspacing
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsWord checks if text contains query as a whole word
func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if strings.Trim(word, ".,!?;:") == query {
			return true
		}
	}
	return false
}
