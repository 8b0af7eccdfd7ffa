package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// ErrCodeNotFound indicates no code submission matches the lookup.
var ErrCodeNotFound = errors.New("code submission not found")

// CodeService manages linked repository submissions and their review
// artefacts: line comments and final feedback.
type CodeService interface {
	Create(ctx context.Context, payload dto.RepoSubmissionRequest) (models.Code, error)
	Get(ctx context.Context, id string) (models.Code, error)
	GithubURL(ctx context.Context, id string) (string, error)
	GithubURLBySubmission(ctx context.Context, submissionID string) (string, error)
	SaveLineComment(ctx context.Context, payload dto.LineCommentRequest) (models.Code, error)
	SaveFinalFeedback(ctx context.Context, payload dto.FinalFeedbackRequest) (models.Code, error)
}

type codeService struct {
	codes     repository.CodeRepository
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCodeService constructs a CodeService instance. Reviewer comment text
// is sanitized with a strict policy before storage.
func NewCodeService(codes repository.CodeRepository, validate *validator.Validate, logger zerolog.Logger) CodeService {
	return &codeService{
		codes:     codes,
		sanitizer: bluemonday.StrictPolicy(),
		validator: validate,
		logger:    logger.With().Str("component", "code_service").Logger(),
		now:       time.Now,
	}
}

func (s *codeService) Create(ctx context.Context, payload dto.RepoSubmissionRequest) (models.Code, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Code{}, err
	}

	comments := payload.Comments
	if len(comments) == 0 {
		comments = json.RawMessage("{}")
	} else if !json.Valid(comments) {
		return models.Code{}, fmt.Errorf("comments payload is not valid JSON")
	}

	code := models.Code{
		ID:            uuid.NewString(),
		SubmissionID:  payload.SubmissionID,
		GithubURL:     payload.GithubURL,
		Comments:      datatypes.JSON(comments),
		FinalFeedback: payload.FinalFeedback,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}

	if err := s.codes.Create(ctx, &code); err != nil {
		return models.Code{}, err
	}

	s.logger.Info().
		Str("code_id", code.ID).
		Str("submission_id", code.SubmissionID).
		Msg("repository submission created")

	return code, nil
}

func (s *codeService) Get(ctx context.Context, id string) (models.Code, error) {
	code, err := s.codes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Code{}, ErrCodeNotFound
		}
		return models.Code{}, err
	}
	return code, nil
}

func (s *codeService) GithubURL(ctx context.Context, id string) (string, error) {
	code, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return code.GithubURL, nil
}

func (s *codeService) GithubURLBySubmission(ctx context.Context, submissionID string) (string, error) {
	code, err := s.codes.FindBySubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCodeNotFound
		}
		return "", err
	}
	return code.GithubURL, nil
}

// SaveLineComment appends a reviewer comment under file name and line
// number. Comments accumulate; nothing is overwritten.
func (s *codeService) SaveLineComment(ctx context.Context, payload dto.LineCommentRequest) (models.Code, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Code{}, err
	}

	code, err := s.Get(ctx, payload.CodeID)
	if err != nil {
		return models.Code{}, err
	}

	comments := map[string]map[string][]string{}
	if len(code.Comments) > 0 {
		if err := json.Unmarshal(code.Comments, &comments); err != nil {
			return models.Code{}, fmt.Errorf("decode stored comments: %w", err)
		}
	}

	line := strconv.Itoa(payload.LineNumber)
	if comments[payload.FileName] == nil {
		comments[payload.FileName] = map[string][]string{}
	}
	comments[payload.FileName][line] = append(
		comments[payload.FileName][line],
		s.sanitizer.Sanitize(payload.CommentText),
	)

	encoded, err := json.Marshal(comments)
	if err != nil {
		return models.Code{}, fmt.Errorf("encode comments: %w", err)
	}

	code.Comments = datatypes.JSON(encoded)
	code.UpdatedAt = s.now()

	if err := s.codes.Update(ctx, &code); err != nil {
		return models.Code{}, err
	}

	return code, nil
}

func (s *codeService) SaveFinalFeedback(ctx context.Context, payload dto.FinalFeedbackRequest) (models.Code, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Code{}, err
	}

	code, err := s.Get(ctx, payload.CodeID)
	if err != nil {
		return models.Code{}, err
	}

	code.FinalFeedback = s.sanitizer.Sanitize(payload.FinalFeedback)
	code.UpdatedAt = s.now()

	if err := s.codes.Update(ctx, &code); err != nil {
		return models.Code{}, err
	}

	return code, nil
}
