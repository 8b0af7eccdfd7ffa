package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission channels an assignment can enable. Each channel is an
// independent artefact/evaluation stream for one student submission.
const (
	ChannelCode   = "code"
	ChannelReport = "report"
	ChannelVideo  = "video"
	ChannelViva   = "viva"
)

// Channels lists every submission channel in canonical order.
func Channels() []string {
	return []string{ChannelCode, ChannelReport, ChannelVideo, ChannelViva}
}

// Assignment represents one assignment definition inside a module.
type Assignment struct {
	ID              string            `gorm:"primaryKey;size:64" json:"assignment_id"`
	ModuleID        string            `gorm:"size:64;not null;index" json:"module_id"`
	Name            string            `gorm:"size:255;not null" json:"name"`
	Description     string            `gorm:"type:text" json:"description"`
	Deadline        time.Time         `json:"deadline"`
	SubmissionTypes datatypes.JSONMap `gorm:"type:json" json:"submission_types"`
	MarkingCriteria datatypes.JSON    `gorm:"type:json" json:"marking_criteria"`
	Details         datatypes.JSON    `gorm:"type:json" json:"details"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
