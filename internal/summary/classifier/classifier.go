// Package classifier assigns a type, an intent and an urgency to normalized text.
package classifier

import (
	"strings"
	"time"

	"summaryhub-backend/internal/summary/domain"
)

const (
	highUrgencyWindow   = 6 * time.Hour
	mediumUrgencyWindow = 48 * time.Hour
)

// Classify runs the three passes. raw is the untouched message text, used for
// exclamation counting since normalization collapses repeated punctuation.
// target is the resolved date-time, if any.
func Classify(text, raw string, target *time.Time, anchor time.Time) domain.Classification {
	lower := strings.ToLower(text)
	t := ClassifyType(lower)
	return domain.Classification{
		Type:    t,
		Intent:  ClassifyIntent(lower, t),
		Urgency: ClassifyUrgency(lower, raw, target, anchor),
	}
}

// ClassifyType returns the first matching type, or message
func ClassifyType(text string) domain.Type {
	lower := strings.ToLower(text)
	for _, r := range TypeRules {
		if r.Match(lower) {
			return r.Label
		}
	}
	return domain.TypeMessage
}

// ClassifyIntent refines t into an intent
func ClassifyIntent(text string, t domain.Type) domain.Intent {
	lower := strings.ToLower(text)

	if t == domain.TypeMeeting {
		return firstIntent(MeetingIntentRules, lower, domain.IntentInformMeeting)
	}
	if t == domain.TypeReminder || reminderWords(lower) {
		return domain.IntentReminder
	}
	if t == domain.TypeNote {
		return domain.IntentInformational
	}
	return firstIntent(RequestIntentRules, lower, domain.IntentInformational)
}

// ClassifyUrgency grades urgency from keywords, exclamations and time to target
func ClassifyUrgency(text, raw string, target *time.Time, anchor time.Time) domain.Urgency {
	lower := strings.ToLower(text)

	if highUrgencyWords(lower) || strings.Count(raw, "!") >= 3 {
		return domain.UrgencyHigh
	}
	if target != nil {
		switch until := target.Sub(anchor); {
		case until <= highUrgencyWindow:
			return domain.UrgencyHigh
		case until <= mediumUrgencyWindow:
			return domain.UrgencyMedium
		default:
			return domain.UrgencyLow
		}
	}
	if soonWords(lower) {
		return domain.UrgencyMedium
	}
	return domain.UrgencyLow
}

// IsFollowUp reports whether the text asks to follow up
func IsFollowUp(text string) bool {
	return followUpWords(strings.ToLower(text))
}

func firstIntent(rules []IntentRule, lower string, fallback domain.Intent) domain.Intent {
	for _, r := range rules {
		if r.Match(lower) {
			return r.Label
		}
	}
	return fallback
}
