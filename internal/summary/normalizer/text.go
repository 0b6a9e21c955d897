package normalizer

import (
	"strings"
	"unicode"
)

func normalizeSpacing(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// collapseRepeats shortens runs of the same rune. Digits and whitespace are never
// touched. With sentencePunct set, runs of '!', '?' and '.' shrink to a single rune;
// every other run longer than two shrinks to two.
func collapseRepeats(s string, sentencePunct bool) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		r := runes[i]
		j := i + 1
		for j < len(runes) && runes[j] == r {
			j++
		}
		n := j - i
		switch {
		case unicode.IsDigit(r) || unicode.IsSpace(r):
		case sentencePunct && (r == '!' || r == '?' || r == '.'):
			n = 1
		case n > 2:
			n = 2
		}
		for k := 0; k < n; k++ {
			b.WriteRune(r)
		}
		i = j
	}
	return b.String()
}

// dedupTokens drops a token equal to the one before it and collapses whitespace
func dedupTokens(s string) string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	prev := ""
	for _, f := range fields {
		if f == prev {
			continue
		}
		out = append(out, f)
		prev = f
	}
	return strings.Join(out, " ")
}
