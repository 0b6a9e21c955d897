// Package composer renders the one-line summary of a classified message.
package composer

import (
	"fmt"
	"strings"
	"time"

	"summaryhub-backend/internal/summary/domain"
)

var leadPhrases = map[domain.Intent]string{
	domain.IntentConfirmMeeting:    "User wants confirmation",
	domain.IntentScheduleMeeting:   "User wants to schedule",
	domain.IntentRescheduleMeeting: "User wants to reschedule",
	domain.IntentCancelMeeting:     "User wants to cancel",
	domain.IntentInformMeeting:     "User shares an update",
	domain.IntentReminder:          "User shares a reminder",
	domain.IntentUrgentRequest:     "User has an urgent request",
	domain.IntentRequest:           "User requests",
	domain.IntentFollowUp:          "User is following up",
	domain.IntentQuestion:          "User asks a question",
	domain.IntentInformational:     "User shares information",
}

// Lead returns the opening phrase for an intent
func Lead(intent domain.Intent) string {
	if lead, ok := leadPhrases[intent]; ok {
		return lead
	}
	return "User message"
}

// Compose builds the summary sentence. target may be nil.
func Compose(c domain.Classification, people []string, target *time.Time, anchor time.Time) string {
	lead := Lead(c.Intent)
	if c.Type != domain.TypeMeeting {
		return lead + "."
	}

	var b strings.Builder
	b.WriteString(lead)
	if c.Intent == domain.IntentConfirmMeeting {
		b.WriteString(" for a ")
	} else {
		b.WriteString(" about a ")
	}
	if target != nil {
		b.WriteString(timePhrase(*target))
		b.WriteString(" ")
	}
	b.WriteString("meeting")
	if len(people) > 0 {
		b.WriteString(" with ")
		b.WriteString(strings.Join(people, ", "))
	}
	if target != nil {
		b.WriteString(" ")
		b.WriteString(dayPhrase(*target, anchor))
	}
	b.WriteString(".")
	return b.String()
}

// timePhrase renders "5 PM" or "10:30 AM"
func timePhrase(t time.Time) string {
	t = t.UTC()
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	if t.Minute() != 0 {
		return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), suffix)
	}
	return fmt.Sprintf("%d %s", hour, suffix)
}

func dayPhrase(target, anchor time.Time) string {
	target, anchor = target.UTC(), anchor.UTC()
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	anchorDay := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	switch int(targetDay.Sub(anchorDay).Hours() / 24) {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return "on " + target.Format("2006-01-02")
	}
}
