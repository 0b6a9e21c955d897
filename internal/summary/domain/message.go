package domain

import (
	"strings"
	"time"
)

// MessagePayload is a single inbound message from any platform
type MessagePayload struct {
	UserID      string `json:"user_id"`
	Platform    string `json:"platform"`
	MessageID   string `json:"message_id"`
	MessageText string `json:"message_text"`
	Timestamp   string `json:"timestamp"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (p MessagePayload) Trimmed() MessagePayload {
	return MessagePayload{
		UserID:      strings.TrimSpace(p.UserID),
		Platform:    strings.TrimSpace(p.Platform),
		MessageID:   strings.TrimSpace(p.MessageID),
		MessageText: strings.TrimSpace(p.MessageText),
		Timestamp:   strings.TrimSpace(p.Timestamp),
	}
}

var anchorLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseAnchor parses an ISO-8601 timestamp into UTC truncated to whole seconds.
// ok is false when no layout matched.
func ParseAnchor(ts string) (anchor time.Time, ok bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range anchorLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC().Truncate(time.Second), true
		}
	}
	return time.Time{}, false
}

// ResolveAnchor parses ts and falls back to now when it cannot be parsed
func ResolveAnchor(ts string, now time.Time) time.Time {
	if anchor, ok := ParseAnchor(ts); ok {
		return anchor
	}
	return now.UTC().Truncate(time.Second)
}
