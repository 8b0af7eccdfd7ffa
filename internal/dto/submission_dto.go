package dto

import "time"

// SubmissionCreateRequest starts the lifecycle for one (assignment, student)
// pair. Artefact ids may optionally be seeded at creation.
type SubmissionCreateRequest struct {
	AssignmentID string  `json:"assignment_id" validate:"required"`
	StudentID    string  `json:"student_id" validate:"required"`
	CodeID       *string `json:"code_id"`
	ReportID     *string `json:"report_id"`
	VideoID      *string `json:"video_id"`
}

// AttachCodeRequest binds a code artefact to a submission.
type AttachCodeRequest struct {
	SubmissionID string `json:"submission_id" validate:"required"`
	CodeID       string `json:"code_id" validate:"required"`
}

// AttachVideoRequest binds a video artefact to a submission.
type AttachVideoRequest struct {
	SubmissionID string `json:"submission_id" validate:"required"`
	VideoID      string `json:"video_id" validate:"required"`
}

// AttachReportRequest binds a report artefact to a submission.
type AttachReportRequest struct {
	SubmissionID string `json:"submission_id" validate:"required"`
	ReportID     string `json:"report_id" validate:"required"`
}

// SubmissionFieldsUpdateRequest is the partial-update payload. Only
// code_id, report_id, video_id and status may be changed this way.
type SubmissionFieldsUpdateRequest struct {
	SubmissionID string  `json:"submission_id" validate:"required"`
	CodeID       *string `json:"code_id"`
	ReportID     *string `json:"report_id"`
	VideoID      *string `json:"video_id"`
	Status       *string `json:"status"`
}

// CheckSubmissionRequest asks whether a submission exists for the pair.
type CheckSubmissionRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	StudentID    string `json:"student_id" validate:"required"`
}

// CheckSubmissionResponse reports the existence lookup result.
type CheckSubmissionResponse struct {
	Exists       bool   `json:"exists"`
	SubmissionID string `json:"submission_id,omitempty"`
}

// ArtifactIDsResponse lists the artefact ids attached to a submission.
type ArtifactIDsResponse struct {
	CodeID   *string `json:"code_id"`
	ReportID *string `json:"report_id"`
	VideoID  *string `json:"video_id"`
}

// SubmissionDashboardResponse joins submission, assignment, module and
// student identity for the viva dashboard.
type SubmissionDashboardResponse struct {
	AssignmentID   string    `json:"assignment_id"`
	SubmissionID   string    `json:"submission_id"`
	ModuleName     string    `json:"module_name"`
	ModuleSemester int       `json:"module_semester"`
	ModuleYear     int       `json:"module_year"`
	AssignmentName string    `json:"assignment_name"`
	StudentEmail   string    `json:"student_email"`
	SubmittedDate  time.Time `json:"submitted_date"`
}
