package normalizer

import (
	"regexp"
	"strings"
)

var signatureMarkers = []string{
	"--",
	"__",
	"Sent from my iPhone",
	"Sent from my Android",
	"Regards",
	"Best",
	"Thanks",
}

var (
	emojiRunes     = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F900}-\x{1F9FF}\x{1F1E6}-\x{1F1FF}\x{2600}-\x{26FF}\x{2702}-\x{27B0}\x{24C2}\x{1F170}-\x{1F251}\x{FE0F}\x{200D}]`)
	emojiShortcode = regexp.MustCompile(`:[a-z][a-z0-9_+\-]*:`)
	urlPattern     = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)
	hashtagPattern = regexp.MustCompile(`#\w+`)
)

func cleanChat(text string) string {
	text = emojiRunes.ReplaceAllString(text, " ")
	text = emojiShortcode.ReplaceAllString(text, " ")
	text = collapseRepeats(text, false)
	return dedupTokens(text)
}

func cleanEmail(text string) string {
	var subject string
	body := make([]string, 0, 8)

	for _, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if subject == "" && strings.HasPrefix(strings.ToLower(s), "subject:") {
			subject = strings.TrimSpace(s[len("subject:"):])
			continue
		}
		if strings.HasPrefix(s, ">") || isForwardMarker(s) || wroteLine.MatchString(s) {
			continue
		}
		if hasAnyPrefix(s, signatureMarkers) {
			break
		}
		body = append(body, s)
	}

	joined := normalizeSpacing(strings.Join(body, " "))
	switch {
	case subject == "":
		return joined
	case joined == "":
		return subject
	default:
		return subject + " — " + joined
	}
}

// cleanSocial strips links and hashtags and lifts a "replying to" phrase out of the text.
// It returns the cleaned text and the captured phrase, if any.
func cleanSocial(text string) (string, string) {
	text = urlPattern.ReplaceAllString(text, " ")
	text = hashtagPattern.ReplaceAllString(text, " ")

	phrase, start, end := findReplyPhrase(text)
	if phrase == "" {
		return normalizeSpacing(text), ""
	}

	// the marker's own sentence ends here; drop its terminator with it
	tail := strings.TrimLeft(text[end:], ".!?,;: ")
	rest := normalizeSpacing(text[:start] + " " + tail)
	if !strings.Contains(rest, phrase) {
		rest = normalizeSpacing("In reply to: " + phrase + ". " + rest)
	}
	return rest, phrase
}
