package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Type is the coarse message category
type Type string

const (
	TypeMeeting  Type = "meeting"
	TypeReminder Type = "reminder"
	TypeNote     Type = "note"
	TypeTask     Type = "task"
	TypeQuestion Type = "question"
	TypeMessage  Type = "message"
)

// APICategory maps a type onto the five categories exposed by the classify endpoint.
// The fallback "message" type is reported as a note.
func (t Type) APICategory() Type {
	switch t {
	case TypeMeeting, TypeReminder, TypeQuestion, TypeTask:
		return t
	default:
		return TypeNote
	}
}

// Intent is the fine-grained tag conditioned on Type
type Intent string

const (
	IntentConfirmMeeting    Intent = "confirm_meeting"
	IntentScheduleMeeting   Intent = "schedule_meeting"
	IntentRescheduleMeeting Intent = "reschedule_meeting"
	IntentCancelMeeting     Intent = "cancel_meeting"
	IntentInformMeeting     Intent = "inform_meeting"
	IntentReminder          Intent = "reminder"
	IntentInformational     Intent = "informational"
	IntentUrgentRequest     Intent = "urgent_request"
	IntentRequest           Intent = "request"
	IntentFollowUp          Intent = "follow_up"
	IntentQuestion          Intent = "question"
)

// Urgency represents the urgency tier of a message
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Device is the coarse guess of the sending device
type Device string

const (
	DeviceIOS     Device = "ios"
	DeviceAndroid Device = "android"
	DeviceWindows Device = "windows"
	DeviceMacOS   Device = "macos"
	DeviceWeb     Device = "web"
	DeviceUnknown Device = "unknown"
)

// Context flags attached to a record
const (
	FlagHasDate   = "has_date"
	FlagHasPerson = "has_person"
	FlagFollowUp  = "follow_up"
)

// TimestampLayout is the wire format of every timestamp the service emits
const TimestampLayout = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t in UTC with second precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Entities holds the people and the single resolved date-time found in a message
type Entities struct {
	Person   []string `json:"person"`
	DateTime *string  `json:"datetime"`
}

// Classification is the result of the three classifier passes
type Classification struct {
	Type    Type    `json:"type"`
	Intent  Intent  `json:"intent"`
	Urgency Urgency `json:"urgency"`
}

// SummaryRecord is the decision-hub record produced once per summarize call
type SummaryRecord struct {
	SummaryID     string   `json:"summary_id"`
	UserID        string   `json:"user_id"`
	Platform      string   `json:"platform"`
	MessageID     string   `json:"message_id"`
	Summary       string   `json:"summary"`
	Type          Type     `json:"type"`
	Intent        Intent   `json:"intent"`
	Urgency       Urgency  `json:"urgency"`
	Entities      Entities `json:"entities"`
	ContextFlags  []string `json:"context_flags"`
	GeneratedAt   string   `json:"generated_at"`
	DeviceContext Device   `json:"device_context"`
}

// SummaryRow is the persisted shape of a SummaryRecord
type SummaryRow struct {
	SummaryID     string                       `gorm:"column:summary_id;primaryKey;size:64"`
	UserID        string                       `gorm:"column:user_id;index:idx_summaries_user_platform;size:255"`
	Platform      string                       `gorm:"column:platform;index:idx_summaries_user_platform;size:64"`
	MessageID     string                       `gorm:"column:message_id;size:255"`
	Summary       string                       `gorm:"column:summary;type:text"`
	Type          string                       `gorm:"column:type;size:32"`
	Intent        string                       `gorm:"column:intent;size:32"`
	Urgency       string                       `gorm:"column:urgency;size:16"`
	Entities      datatypes.JSONType[Entities] `gorm:"column:entities;type:text"`
	ContextFlags  datatypes.JSONSlice[string]  `gorm:"column:context_flags;type:text"`
	DeviceContext string                       `gorm:"column:device_context;size:16"`
	GeneratedAt   string                       `gorm:"column:generated_at;index;size:32"`
}

// TableName specifies the table name for GORM
func (SummaryRow) TableName() string {
	return "summaries"
}

// ToRow converts a record into its persisted shape
func (r *SummaryRecord) ToRow() *SummaryRow {
	flags := r.ContextFlags
	if flags == nil {
		flags = []string{}
	}
	return &SummaryRow{
		SummaryID:     r.SummaryID,
		UserID:        r.UserID,
		Platform:      r.Platform,
		MessageID:     r.MessageID,
		Summary:       r.Summary,
		Type:          string(r.Type),
		Intent:        string(r.Intent),
		Urgency:       string(r.Urgency),
		Entities:      datatypes.NewJSONType(r.Entities),
		ContextFlags:  datatypes.JSONSlice[string](flags),
		DeviceContext: string(r.DeviceContext),
		GeneratedAt:   r.GeneratedAt,
	}
}

// ToRecord converts a persisted row back into a record
func (row *SummaryRow) ToRecord() *SummaryRecord {
	entities := row.Entities.Data()
	if entities.Person == nil {
		entities.Person = []string{}
	}
	flags := []string(row.ContextFlags)
	if flags == nil {
		flags = []string{}
	}
	device := Device(row.DeviceContext)
	if device == "" {
		device = DeviceUnknown
	}
	return &SummaryRecord{
		SummaryID:     row.SummaryID,
		UserID:        row.UserID,
		Platform:      row.Platform,
		MessageID:     row.MessageID,
		Summary:       row.Summary,
		Type:          Type(row.Type),
		Intent:        Intent(row.Intent),
		Urgency:       Urgency(row.Urgency),
		Entities:      entities,
		ContextFlags:  flags,
		GeneratedAt:   row.GeneratedAt,
		DeviceContext: device,
	}
}
