package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Thursday
var anchor = time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC)

func TestExtractPersons(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"cue word", "Please confirm the meeting at 3 PM with Alex.", []string{"Alex"}},
		{"multi word and honorific", "lunch with Alex Johnson and Dr. Priya Shah", []string{"Alex Johnson", "Priya Shah"}},
		{"email subject skipped", "Project sync — Hi team, please confirm with Sam", []string{"Sam"}},
		{"reminder prefix", "Reminder: Maya needs the report", []string{"Maya"}},
		{"stop words only", "Hey Thanks Regards", []string{}},
		{"deduplicated", "from Kim to Kim", []string{"Kim"}},
		{"empty", "", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractPersons(tc.text))
		})
	}
}

func TestExtractDateTime(t *testing.T) {
	at := func(y int, m time.Month, d, h, min int) *time.Time {
		v := time.Date(y, m, d, h, min, 0, 0, time.UTC)
		return &v
	}

	cases := []struct {
		name string
		text string
		want *time.Time
	}{
		{"tomorrow with pm clock", "Let's meet tomorrow at 5 pm", at(2025, 11, 21, 17, 0)},
		{"relative hours", "call me in 2 hours", at(2025, 11, 20, 16, 0)},
		{"relative days", "ship it in 3 days", at(2025, 11, 23, 14, 0)},
		{"weekday part of day", "Friday morning sync", at(2025, 11, 21, 9, 0)},
		{"same weekday means next week", "see you Thursday", at(2025, 11, 27, 0, 0)},
		{"24 hour clock", "tomorrow at 10:30", at(2025, 11, 21, 10, 30)},
		{"end of day", "submit by EOD", at(2025, 11, 20, 17, 0)},
		{"noon", "today at 12pm", at(2025, 11, 20, 12, 0)},
		{"midnight", "12 am tomorrow", at(2025, 11, 21, 0, 0)},
		{"iso date", "deadline 2025-12-05", at(2025, 12, 5, 0, 0)},
		{"month and day", "launch on Dec 3", at(2025, 12, 3, 0, 0)},
		{"invalid iso date", "ref 2025-13-40", nil},
		{"invalid clock", "at 25 pm", nil},
		{"huge hour offset", "in 99999999999 hours", nil},
		{"huge minute offset", "in 9999999999999999 minutes", nil},
		{"day offset past year 9999", "in 3000000 days", nil},
		{"offset beyond int range", "in 99999999999999999999 days", nil},
		{"large but valid day offset", "in 36500 days", at(2125, 10, 27, 14, 0)},
		{"nothing", "Nothing to see here", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractDateTime(tc.text, anchor)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want.Format(time.RFC3339), got.Format(time.RFC3339))
		})
	}
}

func TestExtractDateTimeIsDeterministic(t *testing.T) {
	first := ExtractDateTime("Let's meet tomorrow at 5 pm", anchor)
	second := ExtractDateTime("Let's meet tomorrow at 5 pm", anchor)

	require.NotNil(t, first)
	assert.Equal(t, *first, *second)
}

func TestExtract(t *testing.T) {
	entities, target := Extract("Please confirm the meeting at 3 PM with Alex.", anchor)

	require.NotNil(t, target)
	require.NotNil(t, entities.DateTime)
	assert.Equal(t, "2025-11-20T15:00:00Z", *entities.DateTime)
	assert.Equal(t, []string{"Alex"}, entities.Person)
}

func TestExtractWithoutEntities(t *testing.T) {
	entities, target := Extract("nothing here", anchor)

	assert.Nil(t, target)
	assert.Nil(t, entities.DateTime)
	assert.NotNil(t, entities.Person)
	assert.Empty(t, entities.Person)
}
