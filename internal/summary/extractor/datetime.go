package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxOffsetDays keeps "in N days" within the four-digit years FormatTimestamp emits
const maxOffsetDays = 10000 * 366

type clockTime struct {
	keyword string
	hour    int
	minute  int
}

// partsOfDay is checked in order; the first keyword present wins
var partsOfDay = []clockTime{
	{"morning", 9, 0},
	{"afternoon", 15, 0},
	{"evening", 18, 0},
	{"tonight", 20, 0},
	{"eod", 17, 0},
	{"end of day", 17, 0},
}

var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

var months = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March, "Apr": time.April,
	"May": time.May, "Jun": time.June, "Jul": time.July, "Aug": time.August,
	"Sep": time.September, "Oct": time.October, "Nov": time.November, "Dec": time.December,
}

var (
	relativeOffset = regexp.MustCompile(`\bin\s+(\d+)\s+(minutes?|hours?|days?)\b`)
	clock12h       = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	clock24h       = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	clockAt        = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})\b`)
	isoDate        = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDay       = regexp.MustCompile(`\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2})\b`)
	wordCache      = map[string]*regexp.Regexp{}
)

func init() {
	wordCache["tomorrow"] = regexp.MustCompile(`\btomorrow`)
	for _, p := range partsOfDay {
		wordCache[p.keyword] = regexp.MustCompile(`\b` + regexp.QuoteMeta(p.keyword))
	}
	for _, wd := range weekdays {
		wordCache[wd.name] = regexp.MustCompile(`\b` + wd.name)
	}
}

func mentions(lower, word string) bool {
	return wordCache[word].MatchString(lower)
}

// ExtractDateTime resolves the first date or time expression in text relative to anchor.
// The result is in UTC; nil means the text names no date or time.
func ExtractDateTime(text string, anchor time.Time) *time.Time {
	anchor = anchor.UTC()
	lower := strings.ToLower(text)

	dayOffset, weekdayNamed := dayContext(lower, anchor)
	onDay := func(hour, minute int) *time.Time {
		d := anchor.AddDate(0, 0, dayOffset)
		t := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
		return &t
	}

	for _, p := range partsOfDay {
		if mentions(lower, p.keyword) {
			return onDay(p.hour, p.minute)
		}
	}

	if m := relativeOffset.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			if t, ok := addOffset(anchor, n, m[2]); ok {
				return &t
			}
		}
	}

	if hour, minute, ok := findClock(text); ok {
		return onDay(hour, minute)
	}

	if weekdayNamed {
		return onDay(0, 0)
	}

	if t, ok := findCalendarDate(text, anchor); ok {
		return &t
	}
	return nil
}

// addOffset moves anchor forward by n units. Offsets that overflow a Duration or land
// past year 9999 are rejected.
func addOffset(anchor time.Time, n int, unit string) (time.Time, bool) {
	if n < 0 {
		return time.Time{}, false
	}
	var t time.Time
	switch {
	case strings.HasPrefix(unit, "minute"), strings.HasPrefix(unit, "hour"):
		step := time.Minute
		if strings.HasPrefix(unit, "hour") {
			step = time.Hour
		}
		if int64(n) > math.MaxInt64/int64(step) {
			return time.Time{}, false
		}
		t = anchor.Add(time.Duration(n) * step)
	default:
		if n > maxOffsetDays {
			return time.Time{}, false
		}
		t = anchor.AddDate(0, 0, n)
	}
	if t.Year() > 9999 {
		return time.Time{}, false
	}
	return t, true
}

// dayContext returns the day offset implied by the text. A weekday name wins over
// "tomorrow" and "today" and always points strictly after the anchor.
func dayContext(lower string, anchor time.Time) (offset int, weekdayNamed bool) {
	for _, wd := range weekdays {
		if mentions(lower, wd.name) {
			diff := (int(wd.day) - int(anchor.Weekday()) + 7) % 7
			if diff == 0 {
				diff = 7
			}
			return diff, true
		}
	}
	if mentions(lower, "tomorrow") {
		return 1, false
	}
	return 0, false
}

func findClock(text string) (hour, minute int, ok bool) {
	for _, m := range clock12h.FindAllStringSubmatch(text, -1) {
		h, _ := strconv.Atoi(m[1])
		mins := 0
		if m[2] != "" {
			mins, _ = strconv.Atoi(m[2])
		}
		if h < 1 || h > 12 || mins > 59 {
			continue
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if h != 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
		return h, mins, true
	}

	for _, m := range clock24h.FindAllStringSubmatch(text, -1) {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		if h > 23 || mins > 59 {
			continue
		}
		return h, mins, true
	}

	for _, m := range clockAt.FindAllStringSubmatch(text, -1) {
		h, _ := strconv.Atoi(m[1])
		if h > 23 {
			continue
		}
		return h, 0, true
	}
	return 0, 0, false
}

func findCalendarDate(text string, anchor time.Time) (time.Time, bool) {
	for _, m := range isoDate.FindAllStringSubmatch(text, -1) {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if t, ok := validDate(y, time.Month(mo), d); ok {
			return t, true
		}
	}
	for _, m := range monthDay.FindAllStringSubmatch(text, -1) {
		d, _ := strconv.Atoi(m[2])
		if t, ok := validDate(anchor.Year(), months[m[1]], d); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// validDate rejects dates that time.Date would silently normalize, like Feb 30
func validDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
