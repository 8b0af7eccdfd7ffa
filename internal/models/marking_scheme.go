package models

import (
	"time"

	"gorm.io/datatypes"
)

// Marking scheme lifecycle states. Only one Active scheme is expected per
// assignment; creating a replacement archives the previous one.
const (
	SchemeStatusActive   = "Active"
	SchemeStatusArchived = "Archived"
)

// Criterion is one rubric row inside a marking scheme channel.
type Criterion struct {
	Criterion         string  `json:"criterion"`
	LowDescription    string  `json:"low_description"`
	MediumDescription string  `json:"medium_description"`
	HighDescription   string  `json:"high_description"`
	Weightage         float64 `json:"weightage"`
}

// MarkingScheme is the rubric governing how an assignment is marked.
// Criteria holds an ordered criterion list per enabled channel; the
// per-channel weights must sum to exactly 100 across enabled channels.
type MarkingScheme struct {
	ID                    string            `gorm:"primaryKey;size:64" json:"id"`
	AssignmentID          string            `gorm:"size:64;index" json:"assignment_id"`
	ModuleCode            string            `gorm:"size:64;not null" json:"module_code"`
	Title                 string            `gorm:"size:255;not null" json:"title"`
	Status                string            `gorm:"size:32;not null" json:"status"`
	Criteria              datatypes.JSON    `gorm:"type:json" json:"criteria"`
	SubmissionTypes       datatypes.JSONMap `gorm:"type:json" json:"submission_types"`
	SubmissionTypeWeights datatypes.JSONMap `gorm:"type:json" json:"submission_type_weights"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// ChannelEnabled reports whether the scheme marks the given submission
// channel. Absent entries count as disabled.
func (m MarkingScheme) ChannelEnabled(channel string) bool {
	value, ok := m.SubmissionTypes[channel]
	if !ok {
		return false
	}
	enabled, ok := value.(bool)
	return ok && enabled
}

// ChannelWeight returns the configured percentage weight for a channel.
// Disabled or missing channels weigh zero.
func (m MarkingScheme) ChannelWeight(channel string) float64 {
	value, ok := m.SubmissionTypeWeights[channel]
	if !ok {
		return 0
	}
	weight, ok := asNumber(value)
	if !ok {
		return 0
	}
	return weight
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
