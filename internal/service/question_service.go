package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
	"github.com/saat-labs/saat-api/pkg/ai"
)

// Question service sentinel errors.
var (
	ErrQuestionSetNotFound  = errors.New("viva question set not found")
	ErrGenerationFailed     = errors.New("question generation failed")
	ErrInvalidQuestionsJSON = errors.New("questions payload is not valid JSON")
)

// QuestionService generates and stores viva question sets.
type QuestionService interface {
	Generate(ctx context.Context, payload dto.GenerateQuestionsRequest) (dto.GeneratedQuestionsResponse, error)
	Save(ctx context.Context, payload dto.SaveVivaQuestionsRequest) (models.VivaQuestionSet, error)
	Get(ctx context.Context, documentID string) (models.VivaQuestionSet, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]models.VivaQuestionSet, error)
}

type questionService struct {
	sets      repository.VivaQuestionRepository
	generator ai.Generator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewQuestionService constructs a QuestionService instance.
func NewQuestionService(sets repository.VivaQuestionRepository, generator ai.Generator, validate *validator.Validate, logger zerolog.Logger) QuestionService {
	return &questionService{
		sets:      sets,
		generator: generator,
		validator: validate,
		logger:    logger.With().Str("component", "question_service").Logger(),
		now:       time.Now,
	}
}

// Generate asks the model for one Easy/Moderate/Difficult block per metric
// type. Generation is all-or-nothing: a failure on any metric fails the
// request so instructors never receive a silently truncated set.
func (s *questionService) Generate(ctx context.Context, payload dto.GenerateQuestionsRequest) (dto.GeneratedQuestionsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GeneratedQuestionsResponse{}, err
	}

	questions := make([]dto.MetricQuestions, 0, len(payload.MetricTypes))
	for _, metric := range payload.MetricTypes {
		prompt := ai.BuildVivaPrompt(payload.AssignmentDescription, metric)

		raw, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			s.logger.Error().Err(err).Str("metric", metric).Msg("generation request failed")
			return dto.GeneratedQuestionsResponse{}, fmt.Errorf("%w: %s", ErrGenerationFailed, metric)
		}

		block, err := ai.ParseQuestionBlock(raw)
		if err != nil {
			s.logger.Error().Err(err).Str("metric", metric).Msg("generated response not parseable")
			return dto.GeneratedQuestionsResponse{}, fmt.Errorf("%w: %s", ErrGenerationFailed, metric)
		}

		questions = append(questions, dto.MetricQuestions{MetricType: metric, QnA: block})
	}

	return dto.GeneratedQuestionsResponse{
		ID:           uuid.NewString(),
		SubmissionID: payload.SubmissionID,
		Category:     "viva",
		Questions:    questions,
	}, nil
}

func (s *questionService) Save(ctx context.Context, payload dto.SaveVivaQuestionsRequest) (models.VivaQuestionSet, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.VivaQuestionSet{}, err
	}

	if !json.Valid(payload.Questions) {
		return models.VivaQuestionSet{}, ErrInvalidQuestionsJSON
	}

	set := models.VivaQuestionSet{
		DocumentID:   uuid.NewString(),
		SubmissionID: payload.SubmissionID,
		Questions:    datatypes.JSON(payload.Questions),
		CreatedAt:    s.now(),
	}

	if err := s.sets.Create(ctx, &set); err != nil {
		return models.VivaQuestionSet{}, err
	}

	s.logger.Info().
		Str("document_id", set.DocumentID).
		Str("submission_id", set.SubmissionID).
		Msg("viva question set saved")

	return set, nil
}

func (s *questionService) Get(ctx context.Context, documentID string) (models.VivaQuestionSet, error) {
	set, err := s.sets.Get(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.VivaQuestionSet{}, ErrQuestionSetNotFound
		}
		return models.VivaQuestionSet{}, err
	}
	return set, nil
}

func (s *questionService) ListBySubmission(ctx context.Context, submissionID string) ([]models.VivaQuestionSet, error) {
	return s.sets.ListBySubmission(ctx, submissionID)
}
