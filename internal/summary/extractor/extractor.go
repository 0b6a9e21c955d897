package extractor

import (
	"time"

	"summaryhub-backend/internal/summary/domain"
)

// Extract runs both extractors. The resolved time is returned alongside the entities
// so callers can compute urgency without reparsing.
func Extract(text string, anchor time.Time) (domain.Entities, *time.Time) {
	entities := domain.Entities{Person: ExtractPersons(text)}
	target := ExtractDateTime(text, anchor)
	if target != nil {
		formatted := domain.FormatTimestamp(*target)
		entities.DateTime = &formatted
	}
	return entities, target
}
