package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report submission lifecycle: submitted -> reviewed (mark set) ->
// published (visible to the student). Publish keeps the previous status
// for audit.
const (
	ReportStatusSubmitted = "submitted"
	ReportStatusReviewed  = "reviewed"
	ReportStatusPublished = "published"
)

// ReportSubmission holds one uploaded report and its assessment state.
// SubmissionReport and AnalysisReport are URLs; the mark is a 0-100 scalar
// set during review, not derived from sub-criteria.
type ReportSubmission struct {
	ID                 string         `gorm:"primaryKey;size:64" json:"report_id"`
	ModuleCode         string         `gorm:"size:64;index" json:"module_code"`
	StudentID          string         `gorm:"size:64;index" json:"student_id"`
	SubmissionReport   string         `gorm:"size:512" json:"submission_report"`
	AnalysisReport     string         `gorm:"size:512" json:"analysis_report"`
	AIContent          datatypes.JSON `gorm:"type:json" json:"aiContent"`
	Plagiarism         datatypes.JSON `gorm:"type:json" json:"plagiarism"`
	Mark               *float64       `json:"mark"`
	MarkingReference   string         `gorm:"size:64;index" json:"marking_reference"`
	Status             string         `gorm:"size:32;not null" json:"status"`
	PreviousStatus     string         `gorm:"size:32" json:"previous_status,omitempty"`
	InstructorFeedback string         `gorm:"type:text" json:"instructor_feedback,omitempty"`
	Summary            string         `gorm:"type:text" json:"summary"`
	SubmissionDate     time.Time      `json:"submission_date"`
	ReviewedDate       *time.Time     `json:"reviewed_date,omitempty"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// IsReviewed reports whether an instructor has recorded a mark.
func (r ReportSubmission) IsReviewed() bool {
	return r.Mark != nil
}
