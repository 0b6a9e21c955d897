package pipeline

import (
	"regexp"
	"strings"

	"summaryhub-backend/internal/summary/classifier"
	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/internal/summary/normalizer"
)

var deviceMarkers = []struct {
	device  domain.Device
	pattern *regexp.Regexp
}{
	{domain.DeviceIOS, regexp.MustCompile(`sent from my iphone`)},
	{domain.DeviceAndroid, regexp.MustCompile(`\bandroid\b`)},
	{domain.DeviceWindows, regexp.MustCompile(`\bwindows\b`)},
	{domain.DeviceMacOS, regexp.MustCompile(`\b(?:mac os x|macos|mac)\b`)},
	{domain.DeviceWeb, regexp.MustCompile(`\b(?:via web|web)\b`)},
}

// DetectDevice guesses the sending device from markers in the raw text
func DetectDevice(raw string) domain.Device {
	lower := strings.ToLower(raw)
	for _, m := range deviceMarkers {
		if m.pattern.MatchString(lower) {
			return m.device
		}
	}
	return domain.DeviceUnknown
}

func contextFlags(text string, entities domain.Entities, intent domain.Intent, meta normalizer.ReplyMeta) []string {
	flags := make([]string, 0, 3)
	if entities.DateTime != nil {
		flags = append(flags, domain.FlagHasDate)
	}
	if len(entities.Person) > 0 {
		flags = append(flags, domain.FlagHasPerson)
	}
	if intent == domain.IntentFollowUp || meta.IsReply || classifier.IsFollowUp(text) {
		flags = append(flags, domain.FlagFollowUp)
	}
	return flags
}
