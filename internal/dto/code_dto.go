package dto

import "encoding/json"

// RepoSubmissionRequest links a GitHub repository to a submission.
type RepoSubmissionRequest struct {
	SubmissionID  string          `json:"submission_id" validate:"required"`
	GithubURL     string          `json:"github_url" validate:"required,url"`
	Comments      json.RawMessage `json:"comments"`
	FinalFeedback string          `json:"final_feedback"`
}

// LineCommentRequest records one reviewer comment against a file line.
type LineCommentRequest struct {
	CodeID      string `json:"code_id" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	LineNumber  int    `json:"line_number" validate:"required,gte=1"`
	CommentText string `json:"comment_text" validate:"required"`
}

// FinalFeedbackRequest stores the reviewer's overall feedback for a code
// submission.
type FinalFeedbackRequest struct {
	CodeID        string `json:"code_id" validate:"required"`
	FinalFeedback string `json:"final_feedback" validate:"required"`
}

// AnalysisRequest triggers an AI convention analysis for a linked
// repository and persists the result against the code submission.
type AnalysisRequest struct {
	CodeID  string `json:"code_id" validate:"required"`
	RepoURL string `json:"repo_url" validate:"required,url"`
}

// CommentCheckRequest runs the stateless comment-accuracy analysis.
type CommentCheckRequest struct {
	RepoURL string `json:"repo_url" validate:"required,url"`
}
