package classifier

import (
	"regexp"
	"strings"

	"summaryhub-backend/internal/summary/domain"
)

// Matcher reports whether a rule applies to lower-cased text
type Matcher func(lower string) bool

// keywords matches any of the words where they start a word. Multi-word phrases
// and trailing-space phrases like "by " are matched the same way; keywords that do
// not start with a letter are matched anywhere.
func keywords(words ...string) Matcher {
	return compile(words, false)
}

// wholeWords matches any of the words only when they stand alone
func wholeWords(words ...string) Matcher {
	return compile(words, true)
}

func compile(words []string, whole bool) Matcher {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		p := regexp.QuoteMeta(w)
		if isWordByte(w[0]) {
			p = `\b` + p
		}
		if whole && isWordByte(w[len(w)-1]) {
			p += `\b`
		}
		alts = append(alts, p)
	}
	re := regexp.MustCompile(`(?:` + strings.Join(alts, "|") + `)`)
	return re.MatchString
}

func anyOf(matchers ...Matcher) Matcher {
	return func(lower string) bool {
		for _, m := range matchers {
			if m(lower) {
				return true
			}
		}
		return false
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// TypeRule is one step of the type cascade
type TypeRule struct {
	Label domain.Type
	Match Matcher
}

// IntentRule is one step of an intent cascade
type IntentRule struct {
	Label domain.Intent
	Match Matcher
}

var (
	meetingWords  = keywords("meeting", "meet", "appointment", "call", "schedule", "reschedule", "cancel", "talk", "chat")
	reminderWords = keywords("reminder", "don't forget", "dont forget", "remember", "due", "deadline", "by eod", "eod")
	byDeadline    = keywords("by ")
	noteWords     = keywords("fyi", "for your information", "note", "heads up", "update")
	taskWords     = keywords("task", "todo", "action item", "assign", "please", "can you", "could you")
	questionWords = anyOf(keywords("question", "?", "ask", "clarify"), wholeWords("who", "what", "when", "where", "how", "why"))
)

// TypeRules is the type cascade, evaluated in order
var TypeRules = []TypeRule{
	{domain.TypeMeeting, meetingWords},
	{domain.TypeReminder, anyOf(reminderWords, byDeadline)},
	{domain.TypeNote, noteWords},
	{domain.TypeTask, taskWords},
	{domain.TypeQuestion, questionWords},
}

// MeetingIntentRules refine a meeting; inform_meeting is the fallback
var MeetingIntentRules = []IntentRule{
	{domain.IntentConfirmMeeting, keywords("confirm", "confirmation")},
	{domain.IntentScheduleMeeting, keywords("schedule", "set up", "book")},
	{domain.IntentRescheduleMeeting, keywords("reschedule", "move", "postpone")},
	{domain.IntentCancelMeeting, keywords("cancel")},
}

// RequestIntentRules apply to anything that is not a meeting, reminder or note;
// informational is the fallback
var RequestIntentRules = []IntentRule{
	{domain.IntentUrgentRequest, keywords("urgent", "asap", "immediately", "high priority", "priority")},
	{domain.IntentRequest, keywords("can you", "please", "could you", "send", "share", "help", "assign", "finish", "complete")},
	{domain.IntentFollowUp, keywords("update", "any update", "follow up", "follow-up", "status")},
	{domain.IntentQuestion, anyOf(keywords("question", "?"), wholeWords("how", "what", "why", "when", "where"))},
}

var (
	highUrgencyWords = keywords("emergency", "critical", "urgent", "asap", "immediately", "high priority", "priority")
	soonWords        = keywords("soon", "tomorrow", "today", "eod", "end of day", "tonight")
	followUpWords    = keywords("follow up", "follow-up")
)
