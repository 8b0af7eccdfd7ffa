package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
)

type vivaQuestionRepoFake struct {
	sets []models.VivaQuestionSet
}

func (r *vivaQuestionRepoFake) Get(ctx context.Context, documentID string) (models.VivaQuestionSet, error) {
	for _, set := range r.sets {
		if set.DocumentID == documentID {
			return set, nil
		}
	}
	return models.VivaQuestionSet{}, gorm.ErrRecordNotFound
}

func (r *vivaQuestionRepoFake) ListBySubmission(ctx context.Context, submissionID string) ([]models.VivaQuestionSet, error) {
	matched := []models.VivaQuestionSet{}
	for _, set := range r.sets {
		if set.SubmissionID == submissionID {
			matched = append(matched, set)
		}
	}
	return matched, nil
}

func (r *vivaQuestionRepoFake) Create(ctx context.Context, set *models.VivaQuestionSet) error {
	r.sets = append(r.sets, *set)
	return nil
}

type generatorFake struct {
	response string
	err      error
	prompts  []string
}

func (g *generatorFake) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

const generatedBlock = `Easy Question: What does the main function do?
Answer: It wires the handlers and starts the server.
Moderate Question: Why is the repository behind an interface?
Answer: So the service can be tested without a database.
Difficult Question: How would you make the grading idempotent?
Answer: Merge marks per criterion instead of appending.`

func TestGenerateProducesBlockPerMetric(t *testing.T) {
	generator := &generatorFake{response: generatedBlock}
	svc := NewQuestionService(&vivaQuestionRepoFake{}, generator, testValidator(), testLogger())

	resp, err := svc.Generate(context.Background(), dto.GenerateQuestionsRequest{
		SubmissionID:          "sub-1",
		AssignmentDescription: "Build a REST API for a library catalogue.",
		MetricTypes:           []string{"understanding", "design"},
	})
	require.NoError(t, err)
	require.Equal(t, "viva", resp.Category)
	require.Equal(t, "sub-1", resp.SubmissionID)
	require.Len(t, resp.Questions, 2)
	require.Equal(t, "understanding", resp.Questions[0].MetricType)
	require.NotNil(t, resp.Questions[0].QnA.Easy)
	require.Equal(t, "What does the main function do?", resp.Questions[0].QnA.Easy.Question)
	require.Len(t, generator.prompts, 2)
}

func TestGenerateFailsWholeRequestOnGeneratorError(t *testing.T) {
	generator := &generatorFake{err: errors.New("model unavailable")}
	svc := NewQuestionService(&vivaQuestionRepoFake{}, generator, testValidator(), testLogger())

	_, err := svc.Generate(context.Background(), dto.GenerateQuestionsRequest{
		SubmissionID:          "sub-1",
		AssignmentDescription: "Build a REST API.",
		MetricTypes:           []string{"understanding"},
	})
	require.True(t, errors.Is(err, ErrGenerationFailed))
}

func TestGenerateFailsOnUnparseableResponse(t *testing.T) {
	generator := &generatorFake{response: "I cannot help with that."}
	svc := NewQuestionService(&vivaQuestionRepoFake{}, generator, testValidator(), testLogger())

	_, err := svc.Generate(context.Background(), dto.GenerateQuestionsRequest{
		SubmissionID:          "sub-1",
		AssignmentDescription: "Build a REST API.",
		MetricTypes:           []string{"understanding"},
	})
	require.True(t, errors.Is(err, ErrGenerationFailed))
}

func TestSaveRejectsInvalidJSON(t *testing.T) {
	repo := &vivaQuestionRepoFake{}
	svc := NewQuestionService(repo, &generatorFake{}, testValidator(), testLogger())

	_, err := svc.Save(context.Background(), dto.SaveVivaQuestionsRequest{
		SubmissionID: "sub-1",
		Questions:    json.RawMessage(`{"broken":`),
	})
	require.True(t, errors.Is(err, ErrInvalidQuestionsJSON))
	require.Empty(t, repo.sets)
}

func TestSaveAndLookupQuestionSet(t *testing.T) {
	repo := &vivaQuestionRepoFake{}
	svc := NewQuestionService(repo, &generatorFake{}, testValidator(), testLogger())

	saved, err := svc.Save(context.Background(), dto.SaveVivaQuestionsRequest{
		SubmissionID: "sub-1",
		Questions:    json.RawMessage(`[{"metric_type":"understanding"}]`),
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.DocumentID)

	fetched, err := svc.Get(context.Background(), saved.DocumentID)
	require.NoError(t, err)
	require.Equal(t, "sub-1", fetched.SubmissionID)

	sets, err := svc.ListBySubmission(context.Background(), "sub-1")
	require.NoError(t, err)
	require.Len(t, sets, 1)

	_, err = svc.Get(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrQuestionSetNotFound))
}
