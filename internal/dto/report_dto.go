package dto

import "encoding/json"

// ReportCreateRequest submits a report. The report and analysis documents
// are referenced by URL; upload happens through the separate upload
// endpoint.
type ReportCreateRequest struct {
	ModuleCode       string          `json:"moduleCode" validate:"required"`
	StudentID        string          `json:"studentId" validate:"required"`
	Status           string          `json:"status"`
	SubmissionReport string          `json:"submissionReport" validate:"required,url"`
	AnalysisReport   string          `json:"analysisReport"`
	AIContent        json.RawMessage `json:"aiContent"`
	Plagiarism       json.RawMessage `json:"plagiarism"`
	Mark             *float64        `json:"mark" validate:"omitempty,gte=0,lte=100"`
	MarkingReference string          `json:"markingReference"`
	Summary          string          `json:"summary"`
}

// ReportReviewRequest records the instructor's mark and feedback. The mark
// must lie in [0,100].
type ReportReviewRequest struct {
	Mark               *float64 `json:"mark" validate:"required,gte=0,lte=100"`
	InstructorFeedback string   `json:"instructor_feedback"`
}

// FailedUpdate describes one item that could not be published in a bulk
// operation.
type FailedUpdate struct {
	ReportID string `json:"report_id"`
	Reason   string `json:"reason"`
}

// BulkPublishResponse reports the outcome of a bulk publish. UpdatedCount
// is zero, not an error, when no rows matched. Partial failures yield a
// 207 status with the failed items listed.
type BulkPublishResponse struct {
	UpdatedCount  int            `json:"updated_count"`
	FailedUpdates []FailedUpdate `json:"failed_updates,omitempty"`
}

// ReportUploadResponse returns the stored URL of an uploaded report file.
type ReportUploadResponse struct {
	URL string `json:"url"`
}
