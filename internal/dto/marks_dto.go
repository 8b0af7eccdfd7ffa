package dto

// SaveMarksRequest records criterion marks for one or more channels of a
// submission. Channel entries are merged into the stored marks map.
type SaveMarksRequest struct {
	SubmissionID string                            `json:"submissionId" validate:"required"`
	Marks        map[string]map[string]interface{} `json:"marks" validate:"required,min=1"`
}

// SaveVideoMarksRequest records the video channel marks kept in their own
// collection.
type SaveVideoMarksRequest struct {
	SubmissionID string                 `json:"submissionId" validate:"required"`
	Marks        map[string]interface{} `json:"marks" validate:"required,min=1"`
}

// ChannelTotal is the summed mark for one submission channel. Present is
// false when no data exists for the channel, in which case Total is 0.
type ChannelTotal struct {
	Total   float64 `json:"total"`
	Present bool    `json:"present"`
}

// ChannelTotalsResponse reports the per-channel totals for a submission.
type ChannelTotalsResponse struct {
	SubmissionID     string       `json:"submission_id"`
	TotalVivaMarks   ChannelTotal `json:"total_viva_marks"`
	TotalCodeMarks   ChannelTotal `json:"total_code_marks"`
	TotalVideoMarks  ChannelTotal `json:"total_video_marks"`
	TotalReportMarks ChannelTotal `json:"total_report_marks"`
}

// FinalGradeResponse combines channel totals with the marking scheme
// weights into one weighted grand total. Channels without recorded data
// contribute zero.
type FinalGradeResponse struct {
	SubmissionID string                  `json:"submission_id"`
	AssignmentID string                  `json:"assignment_id"`
	FinalGrade   float64                 `json:"final_grade"`
	Weights      map[string]float64      `json:"weights"`
	Channels     map[string]ChannelTotal `json:"channels"`
}
