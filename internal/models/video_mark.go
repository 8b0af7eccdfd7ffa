package models

import (
	"time"

	"gorm.io/datatypes"
)

// VideoMark stores the criterion marks recorded for a submission's video
// channel. One record per submission.
type VideoMark struct {
	ID           string            `gorm:"primaryKey;size:64" json:"id"`
	SubmissionID string            `gorm:"size:64;not null;uniqueIndex" json:"submissionId"`
	Marks        datatypes.JSONMap `gorm:"type:json" json:"marks"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
