package ai

import "context"

// Generator describes a generative-language model able to produce free-form
// text from a prompt. Callers impose their own output format through the
// prompt and parse the response themselves.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuestionPair is one generated viva question with its expected answer.
// Answer stays nil when the model response omitted the Answer line.
type QuestionPair struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer,omitempty"`
}

// QuestionBlock groups the three difficulty levels generated per metric.
type QuestionBlock struct {
	Easy      *QuestionPair `json:"easy"`
	Moderate  *QuestionPair `json:"moderate"`
	Difficult *QuestionPair `json:"difficult"`
}
