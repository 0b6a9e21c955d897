// Package normalizer cleans raw message text before extraction and classification.
//
// Every message first goes through the platform-independent context cleaner, then
// through the chain selected by its platform style.
package normalizer

import (
	"strings"
)

// Style selects the platform-specific cleanup chain
type Style string

const (
	StyleChat   Style = "chat"
	StyleEmail  Style = "email"
	StyleSocial Style = "social"
	StylePlain  Style = "plain"
)

// ParseStyle maps a configuration value to a Style. Unknown values yield StylePlain.
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleChat:
		return StyleChat
	case StyleEmail:
		return StyleEmail
	case StyleSocial:
		return StyleSocial
	default:
		return StylePlain
	}
}

// DefaultPlatformStyles returns the built-in platform table
func DefaultPlatformStyles() map[string]Style {
	return map[string]Style{
		"whatsapp":     StyleChat,
		"telegram":     StyleChat,
		"messenger":    StyleChat,
		"email":        StyleEmail,
		"gmail":        StyleEmail,
		"outlook":      StyleEmail,
		"instagram":    StyleSocial,
		"instagram dm": StyleSocial,
		"ig":           StyleSocial,
		"insta":        StyleSocial,
		"twitter":      StyleSocial,
		"x":            StyleSocial,
		"sms":          StylePlain,
	}
}

// ReplyMeta reports whether a message continues an earlier conversation
type ReplyMeta struct {
	IsReply bool   `json:"is_reply"`
	ReplyTo string `json:"reply_to"`
}

// Normalizer applies the context cleaner and the platform chain.
// It is read-only after construction and safe for concurrent use.
type Normalizer struct {
	styles map[string]Style
}

// New creates a Normalizer from a platform table. A nil or empty table uses the defaults.
func New(styles map[string]Style) *Normalizer {
	if len(styles) == 0 {
		styles = DefaultPlatformStyles()
	}
	table := make(map[string]Style, len(styles))
	for platform, style := range styles {
		table[strings.ToLower(strings.TrimSpace(platform))] = style
	}
	return &Normalizer{styles: table}
}

// StyleFor returns the chain used for platform; unrecognized platforms get StylePlain
func (n *Normalizer) StyleFor(platform string) Style {
	if style, ok := n.styles[strings.ToLower(strings.TrimSpace(platform))]; ok {
		return style
	}
	return StylePlain
}

// Normalize returns the cleaned text and the reply metadata for a raw message
func (n *Normalizer) Normalize(platform, raw string) (string, ReplyMeta) {
	cleaned, meta := CleanContext(raw)

	switch n.StyleFor(platform) {
	case StyleChat:
		return cleanChat(cleaned), meta
	case StyleEmail:
		return cleanEmail(cleaned), meta
	case StyleSocial:
		text, phrase := cleanSocial(cleaned)
		if phrase != "" && !meta.IsReply {
			meta = ReplyMeta{IsReply: true, ReplyTo: phrase}
		}
		return text, meta
	default:
		return normalizeSpacing(cleaned), meta
	}
}

// Clean returns only the cleaned text
func (n *Normalizer) Clean(platform, raw string) string {
	text, _ := n.Normalize(platform, raw)
	return text
}
