// Package extractor pulls people and a single resolved date-time out of normalized text.
package extractor

import (
	"regexp"
	"strings"
)

var (
	cueName        = regexp.MustCompile(`\b(?:with|from|to|cc|attn)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	honorificName  = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr)\.\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	capitalToken   = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	reminderPrefix = regexp.MustCompile(`^\s*Reminder\b[\s:\-–—]*`)
)

var personStopWords = map[string]struct{}{
	"hey": {}, "please": {}, "confirm": {}, "tomorrow": {}, "meeting": {},
	"pm": {}, "am": {}, "hello": {}, "update": {}, "subject": {}, "let": {},
	"thanks": {}, "regards": {}, "reminder": {},
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "hi": {},
}

// ExtractPersons returns the people mentioned in text in discovery order.
// Names introduced by a cue word or an honorific come first, then single capitalized
// tokens from the message body.
func ExtractPersons(text string) []string {
	people := make([]string, 0, 4)
	seen := make(map[string]struct{})
	covered := make(map[string]struct{})

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || isStopWord(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		people = append(people, name)
	}

	for _, re := range []*regexp.Regexp{cueName, honorificName} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.Join(strings.Fields(m[1]), " ")
			add(name)
			if parts := strings.Fields(name); len(parts) > 1 {
				for _, p := range parts {
					covered[p] = struct{}{}
				}
			}
		}
	}

	for _, tok := range capitalToken.FindAllString(bodyForTokens(text), -1) {
		if _, ok := covered[tok]; ok {
			continue
		}
		add(tok)
	}
	return people
}

// bodyForTokens trims the part of the text that usually holds a subject or a label
func bodyForTokens(text string) string {
	if _, after, ok := strings.Cut(text, "—"); ok {
		text = after
	} else if _, after, ok := strings.Cut(text, " - "); ok {
		text = after
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToLower(text), "subject:") {
		text = text[len("subject:"):]
	}
	return reminderPrefix.ReplaceAllString(text, "")
}

func isStopWord(name string) bool {
	_, ok := personStopWords[strings.ToLower(name)]
	return ok
}
