package dto

// CriterionPayload is one rubric row as submitted by the frontend.
type CriterionPayload struct {
	Name              string  `json:"name" validate:"required"`
	LowDescription    string  `json:"lowDescription"`
	MediumDescription string  `json:"mediumDescription"`
	HighDescription   string  `json:"highDescription"`
	Weight            float64 `json:"weight" validate:"gte=0"`
}

// MarkingSchemeCreateRequest describes a new rubric. Criteria maps each
// submission channel to its ordered criterion list; only criteria of
// enabled channels are persisted. The weights of enabled channels must sum
// to exactly 100.
type MarkingSchemeCreateRequest struct {
	RubricName            string                        `json:"rubricName" validate:"required"`
	ModuleCode            string                        `json:"moduleCode" validate:"required"`
	AssignmentID          string                        `json:"assignment_id"`
	Criteria              map[string][]CriterionPayload `json:"criteria" validate:"required"`
	SubmissionTypes       map[string]bool               `json:"submission_types" validate:"required"`
	SubmissionTypeWeights map[string]float64            `json:"submission_type_weights" validate:"required"`
}

// SchemeWeightsResponse exposes the stored channel weights for an assignment.
type SchemeWeightsResponse struct {
	AssignmentID          string             `json:"assignment_id"`
	SubmissionTypeWeights map[string]float64 `json:"submission_type_weights"`
}
