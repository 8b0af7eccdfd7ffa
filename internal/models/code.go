package models

import (
	"time"

	"gorm.io/datatypes"
)

// Code represents a linked GitHub repository submission and everything the
// review workflow accumulates against it: line comments keyed by file and
// line number, final feedback, analysis results and criterion marks.
type Code struct {
	ID                     string            `gorm:"primaryKey;size:64" json:"code_id"`
	SubmissionID           string            `gorm:"size:64;not null;index" json:"submission_id"`
	GithubURL              string            `gorm:"size:512;not null" json:"github_url"`
	Comments               datatypes.JSON    `gorm:"type:json" json:"comments"`
	FinalFeedback          string            `gorm:"type:text" json:"final_feedback"`
	FileNamingResults      datatypes.JSONMap `gorm:"type:json" json:"file_naming_convention_results"`
	CodeNamingResults      datatypes.JSONMap `gorm:"type:json" json:"code_naming_convention_results"`
	CommentAccuracyResults datatypes.JSONMap `gorm:"type:json" json:"comment_accuracy_results"`
	Marks                  datatypes.JSONMap `gorm:"type:json" json:"marks"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}
