package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionStatusPending is the status assigned to freshly created
// submissions before any artefact has been reviewed.
const SubmissionStatusPending = "Pending"

// Submission ties a student to an assignment and tracks the artefacts
// attached per channel. Artefact ids start null and are set independently;
// there is no ordering constraint between channels.
type Submission struct {
	ID           string            `gorm:"primaryKey;size:64" json:"submission_id"`
	AssignmentID string            `gorm:"size:64;not null;index" json:"assignment_id"`
	StudentID    string            `gorm:"size:64;not null;index" json:"student_id"`
	Status       string            `gorm:"size:64;not null" json:"status"`
	CodeID       *string           `gorm:"size:64" json:"code_id"`
	ReportID     *string           `gorm:"size:64" json:"report_id"`
	VideoID      *string           `gorm:"size:64" json:"video_id"`
	Marks        datatypes.JSONMap `gorm:"type:json" json:"marks"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ChannelMarks returns the recorded criterion marks for one channel, or nil
// when nothing has been recorded yet.
func (s Submission) ChannelMarks(channel string) map[string]interface{} {
	value, ok := s.Marks[channel]
	if !ok {
		return nil
	}
	marks, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	return marks
}
