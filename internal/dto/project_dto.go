package dto

import (
	"encoding/json"

	"github.com/saat-labs/saat-api/internal/models"
)

// ProjectOverviewResponse joins everything recorded against one submission
// into a single view for the assessment screen. Artefact sections are nil
// when the channel has no data yet.
type ProjectOverviewResponse struct {
	Submission   models.Submission        `json:"submission"`
	Assignment   *models.Assignment       `json:"assignment,omitempty"`
	Module       *models.Module           `json:"module,omitempty"`
	Student      *models.User             `json:"student,omitempty"`
	Code         *models.Code             `json:"code,omitempty"`
	Report       *models.ReportSubmission `json:"report,omitempty"`
	VideoMarks   *models.VideoMark        `json:"video_marks,omitempty"`
	VivaSets     []models.VivaQuestionSet `json:"viva_question_sets,omitempty"`
	ChannelGrade map[string]ChannelTotal  `json:"channel_totals"`
	Scheme       *ProjectSchemeSummary    `json:"marking_scheme,omitempty"`
}

// ProjectSchemeSummary is the rubric slice shown in the overview.
type ProjectSchemeSummary struct {
	SchemeID              string             `json:"scheme_id"`
	Title                 string             `json:"title"`
	SubmissionTypeWeights map[string]float64 `json:"submission_type_weights"`
	Criteria              json.RawMessage    `json:"criteria"`
}

// AssignmentDetails nests an assignment with its submissions.
type AssignmentDetails struct {
	Assignment  models.Assignment   `json:"assignment"`
	Submissions []models.Submission `json:"submissions"`
}

// ModuleDetails nests a module with its assignment tree.
type ModuleDetails struct {
	Module      models.Module       `json:"module"`
	Assignments []AssignmentDetails `json:"assignments"`
}

// SiteDetailsResponse is the admin dashboard aggregate: every module with
// its assignments and their submissions, plus all user accounts.
type SiteDetailsResponse struct {
	Modules []ModuleDetails `json:"modules"`
	Users   []models.User   `json:"users"`
}
