// Package pipeline turns a message payload into a decision-hub record.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"summaryhub-backend/internal/summary/classifier"
	"summaryhub-backend/internal/summary/composer"
	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/internal/summary/extractor"
	"summaryhub-backend/internal/summary/normalizer"
)

// Options configures a Pipeline. Zero values pick the production defaults.
type Options struct {
	// Enrich attaches context flags and the device guess to every record
	Enrich bool
	Now    func() time.Time
	NewID  func() string
}

// Pipeline is stateless per call and safe for concurrent use
type Pipeline struct {
	normalizer *normalizer.Normalizer
	enrich     bool
	now        func() time.Time
	newID      func() string
}

// New creates a pipeline around the given normalizer
func New(n *normalizer.Normalizer, opts Options) *Pipeline {
	if n == nil {
		n = normalizer.New(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = NewSummaryID
	}
	return &Pipeline{
		normalizer: n,
		enrich:     opts.Enrich,
		now:        opts.Now,
		newID:      opts.NewID,
	}
}

// NewSummaryID returns "s_" followed by 12 hex characters of a random UUID
func NewSummaryID() string {
	return "s_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Summarize runs every stage and assembles a new record. Each call yields a fresh
// summary_id, even for a payload seen before. A panic inside a stage is returned as
// an error.
func (p *Pipeline) Summarize(payload domain.MessagePayload) (record *domain.SummaryRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("pipeline panic on message %q: %v", payload.MessageID, r)
		}
	}()

	payload = payload.Trimmed()
	now := p.now()
	anchor := domain.ResolveAnchor(payload.Timestamp, now)

	text, meta := p.normalizer.Normalize(payload.Platform, payload.MessageText)
	entities, target := extractor.Extract(text, anchor)
	c := classifier.Classify(text, payload.MessageText, target, anchor)

	record = &domain.SummaryRecord{
		SummaryID:     p.newID(),
		UserID:        payload.UserID,
		Platform:      payload.Platform,
		MessageID:     payload.MessageID,
		Summary:       composer.Compose(c, entities.Person, target, anchor),
		Type:          c.Type,
		Intent:        c.Intent,
		Urgency:       c.Urgency,
		Entities:      entities,
		ContextFlags:  []string{},
		GeneratedAt:   domain.FormatTimestamp(now),
		DeviceContext: domain.DeviceUnknown,
	}
	if p.enrich {
		record.ContextFlags = contextFlags(text, entities, c.Intent, meta)
		record.DeviceContext = DetectDevice(payload.MessageText)
	}
	return record, nil
}

// Classify normalizes and classifies text without resolving a date-time
func (p *Pipeline) Classify(platform, text string) domain.Classification {
	cleaned, _ := p.normalizer.Normalize(platform, text)
	return classifier.Classify(cleaned, text, nil, p.now())
}

// Entities normalizes the payload text and extracts people and the date-time
func (p *Pipeline) Entities(payload domain.MessagePayload) domain.Entities {
	payload = payload.Trimmed()
	anchor := domain.ResolveAnchor(payload.Timestamp, p.now())
	cleaned, _ := p.normalizer.Normalize(payload.Platform, payload.MessageText)
	entities, _ := extractor.Extract(cleaned, anchor)
	return entities
}

// Clean returns the normalized text for a platform
func (p *Pipeline) Clean(platform, text string) string {
	return p.normalizer.Clean(platform, text)
}
