package models

import (
	"time"

	"gorm.io/datatypes"
)

// VivaQuestionSet is an append-only batch of generated viva questions for a
// submission. Questions keeps the generated structure verbatim: one entry
// per metric with easy/moderate/difficult question-answer pairs.
type VivaQuestionSet struct {
	DocumentID   string         `gorm:"primaryKey;size:64" json:"document_id"`
	SubmissionID string         `gorm:"size:64;not null;index" json:"submission_id"`
	Questions    datatypes.JSON `gorm:"type:json" json:"questions"`
	CreatedAt    time.Time      `json:"created_at"`
}
