package dto

import (
	"encoding/json"

	"github.com/saat-labs/saat-api/pkg/ai"
)

// SaveVivaQuestionsRequest persists a generated (or edited) question batch
// against a submission.
type SaveVivaQuestionsRequest struct {
	SubmissionID string          `json:"submission_id" validate:"required"`
	Questions    json.RawMessage `json:"questions" validate:"required"`
}

// GenerateQuestionsRequest asks the generative model for viva questions,
// one Easy/Moderate/Difficult block per metric type.
type GenerateQuestionsRequest struct {
	SubmissionID          string   `json:"submission_id" validate:"required"`
	AssignmentDescription string   `json:"assignment_description" validate:"required"`
	MetricTypes           []string `json:"metric_types" validate:"required,min=1,dive,required"`
}

// MetricQuestions pairs one metric with its generated question block.
type MetricQuestions struct {
	MetricType string           `json:"metric_type"`
	QnA        ai.QuestionBlock `json:"qna"`
}

// GeneratedQuestionsResponse is the full generation result for a
// submission.
type GeneratedQuestionsResponse struct {
	ID           string            `json:"id"`
	SubmissionID string            `json:"submission_id"`
	Category     string            `json:"category"`
	Questions    []MetricQuestions `json:"questions"`
}
