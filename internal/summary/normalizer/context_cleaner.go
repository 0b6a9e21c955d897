package normalizer

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
	"golang.org/x/text/unicode/norm"
)

var forwardMarkers = []string{
	"Forwarded message",
	"Begin forwarded message",
	"-----Original Message-----",
	"----- Forwarded Message -----",
	"From:",
	"Sent:",
	"To:",
}

var (
	wroteLine      = regexp.MustCompile(`(?i)^On .+ wrote:\s*$`)
	replyQuoted    = regexp.MustCompile(`(?i)\b(?:replying|replied) to\b[:\s]*(?:"([^"\n]+)"|'([^'\n]+)')`)
	replyBare      = regexp.MustCompile(`(?i)\b(?:replying|replied) to\b[:\s]*([^.!?\n]+)`)
	threadMarker   = regexp.MustCompile(`(?i)\b(?:re|fw|fwd):`)
	punctuationMap = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
		"—", "-",
		"–", "-",
		"…", "...",
	)
)

// CleanContext is the platform-independent first stage. It removes forward and quote
// boilerplate, unifies punctuation, demojizes and collapses repetition while keeping
// line structure, and reports reply-chain metadata.
func CleanContext(raw string) (string, ReplyMeta) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	text := removeForwardsQuotes(raw)
	text = unifyPunctuation(text)
	text = demojize(text)

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = collapseLine(line); line != "" {
			kept = append(kept, line)
		}
	}
	cleaned := strings.Join(kept, "\n")

	return cleaned, detectReply(raw, cleaned)
}

func removeForwardsQuotes(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	skipping := false
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if skipping {
			// a quoted block after "On ... wrote:" runs until the next blank line
			if s == "" {
				skipping = false
			}
			continue
		}
		if s == "" || strings.HasPrefix(s, ">") || isForwardMarker(s) {
			continue
		}
		if wroteLine.MatchString(s) {
			skipping = true
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, "\n")
}

// isForwardMarker also accepts markers wrapped in dashes, as mail clients print them
func isForwardMarker(line string) bool {
	return hasAnyPrefix(line, forwardMarkers) || hasAnyPrefix(strings.TrimLeft(line, "- "), forwardMarkers)
}

// collapseLine collapses repetition token by token, leaving links intact
func collapseLine(line string) string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if !looksLikeLink(f) {
			fields[i] = collapseRepeats(f, true)
		}
	}
	return dedupTokens(strings.Join(fields, " "))
}

func looksLikeLink(token string) bool {
	lower := strings.ToLower(token)
	return strings.Contains(lower, "://") || strings.HasPrefix(lower, "www.")
}

func unifyPunctuation(text string) string {
	return norm.NFKC.String(punctuationMap.Replace(text))
}

func demojize(text string) string {
	for _, em := range gomoji.FindAll(text) {
		if em.Character == "" || em.Slug == "" {
			continue
		}
		text = strings.ReplaceAll(text, em.Character, ":"+em.Slug+":")
	}
	return text
}

func detectReply(raw, cleaned string) ReplyMeta {
	if phrase, _, _ := findReplyPhrase(cleaned); phrase != "" {
		return ReplyMeta{IsReply: true, ReplyTo: phrase}
	}
	if threadMarker.MatchString(cleaned) {
		return ReplyMeta{IsReply: true, ReplyTo: "thread"}
	}
	for _, line := range strings.Split(raw, "\n") {
		if wroteLine.MatchString(strings.TrimSpace(line)) {
			return ReplyMeta{IsReply: true, ReplyTo: "quoted"}
		}
	}
	return ReplyMeta{}
}

// findReplyPhrase locates a "replying to <phrase>" marker. It returns the phrase and
// the byte span of the whole marker, or an empty phrase when there is none.
func findReplyPhrase(text string) (phrase string, start, end int) {
	if m := replyQuoted.FindStringSubmatchIndex(text); m != nil {
		for g := 1; g <= 2; g++ {
			if m[2*g] >= 0 {
				return strings.TrimSpace(text[m[2*g]:m[2*g+1]]), m[0], m[1]
			}
		}
	}
	if m := replyBare.FindStringSubmatchIndex(text); m != nil {
		p := strings.Trim(text[m[2]:m[3]], "\"' \t")
		if p != "" {
			return p, m[0], m[1]
		}
	}
	return "", 0, 0
}
