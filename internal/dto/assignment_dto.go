package dto

import "encoding/json"

// AssignmentCreateRequest describes the payload for creating an assignment.
// MarkingCriteria and Details are stored verbatim; SubmissionTypes is the
// per-channel enable map.
type AssignmentCreateRequest struct {
	ModuleID        string          `json:"module_id" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	Deadline        string          `json:"deadline" validate:"omitempty"`
	SubmissionTypes map[string]bool `json:"submission_types"`
	MarkingCriteria json.RawMessage `json:"markingCriteria" validate:"required"`
	Details         json.RawMessage `json:"details"`
}

// AssignmentUpdateRequest applies a partial edit; absent fields keep their
// stored values.
type AssignmentUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
}
