package ai

import (
	"errors"
	"strings"
)

// ErrNoQuestions indicates the model response contained none of the expected
// difficulty headings.
var ErrNoQuestions = errors.New("no question headings found in response")

// ParseQuestionBlock extracts the Easy/Moderate/Difficult question-answer
// pairs from a labelled model response. The parser matches heading strings
// line by line; Answer lines are assigned to the most recent question that
// does not yet have one, in easy, moderate, difficult order. Missing answers
// are left nil rather than treated as an error.
func ParseQuestionBlock(text string) (QuestionBlock, error) {
	block := QuestionBlock{}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "Easy Question"):
			block.Easy = &QuestionPair{Question: afterColon(line)}
		case strings.Contains(line, "Moderate Question"):
			block.Moderate = &QuestionPair{Question: afterColon(line)}
		case strings.Contains(line, "Difficult Question"):
			block.Difficult = &QuestionPair{Question: afterColon(line)}
		case strings.Contains(line, "Answer"):
			answer := afterColon(line)
			switch {
			case block.Easy != nil && block.Easy.Answer == nil:
				block.Easy.Answer = &answer
			case block.Moderate != nil && block.Moderate.Answer == nil:
				block.Moderate.Answer = &answer
			case block.Difficult != nil && block.Difficult.Answer == nil:
				block.Difficult.Answer = &answer
			}
		}
	}

	if block.Easy == nil && block.Moderate == nil && block.Difficult == nil {
		return QuestionBlock{}, ErrNoQuestions
	}

	return block, nil
}

func afterColon(line string) string {
	if idx := strings.Index(line, ": "); idx >= 0 {
		return strings.TrimSpace(line[idx+2:])
	}
	return strings.TrimSpace(line)
}

// CleanJSONResponse strips markdown code fences and line comments from a
// model response so it can be decoded as JSON. Generative models frequently
// wrap JSON in ```json blocks or append // annotations despite being told
// not to.
func CleanJSONResponse(text string) string {
	cleaned := strings.TrimSpace(text)

	if idx := strings.Index(cleaned, "```json"); idx >= 0 {
		cleaned = cleaned[idx+len("```json"):]
		if end := strings.Index(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	} else if idx := strings.Index(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[idx+len("```"):]
		if end := strings.Index(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	}

	lines := strings.Split(cleaned, "\n")
	stripped := make([]string, 0, len(lines))
	for _, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		stripped = append(stripped, strings.TrimSpace(line))
	}

	return strings.TrimSpace(strings.Join(stripped, " "))
}
