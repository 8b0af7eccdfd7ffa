package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// ErrMarkingSchemeNotFound indicates no scheme matches the lookup.
var ErrMarkingSchemeNotFound = errors.New("marking scheme not found")

// WeightSumError rejects a scheme whose enabled channel weights do not sum
// to exactly 100. The offending total is reported back to the caller.
type WeightSumError struct {
	Total float64
}

func (e *WeightSumError) Error() string {
	return fmt.Sprintf("submission type weights for enabled types must sum to 100, got %g", e.Total)
}

// MarkingSchemeService manages rubric definitions.
type MarkingSchemeService interface {
	Create(ctx context.Context, payload dto.MarkingSchemeCreateRequest) (models.MarkingScheme, error)
	Get(ctx context.Context, id string) (models.MarkingScheme, error)
	List(ctx context.Context) ([]models.MarkingScheme, error)
	GetByAssignment(ctx context.Context, assignmentID string) (models.MarkingScheme, error)
	Weights(ctx context.Context, assignmentID string) (dto.SchemeWeightsResponse, error)
}

type markingSchemeService struct {
	schemes   repository.MarkingSchemeRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewMarkingSchemeService constructs a MarkingSchemeService instance.
func NewMarkingSchemeService(schemes repository.MarkingSchemeRepository, validate *validator.Validate, logger zerolog.Logger) MarkingSchemeService {
	return &markingSchemeService{
		schemes:   schemes,
		validator: validate,
		logger:    logger.With().Str("component", "marking_scheme_service").Logger(),
		now:       time.Now,
	}
}

func (s *markingSchemeService) Create(ctx context.Context, payload dto.MarkingSchemeCreateRequest) (models.MarkingScheme, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.MarkingScheme{}, err
	}

	if err := validateWeightSum(payload.SubmissionTypes, payload.SubmissionTypeWeights); err != nil {
		return models.MarkingScheme{}, err
	}

	// Criteria and weights of disabled channels are dropped, not hidden.
	criteria := map[string][]models.Criterion{}
	for channel, rows := range payload.Criteria {
		if !payload.SubmissionTypes[channel] {
			continue
		}
		converted := make([]models.Criterion, 0, len(rows))
		for _, row := range rows {
			converted = append(converted, models.Criterion{
				Criterion:         row.Name,
				LowDescription:    row.LowDescription,
				MediumDescription: row.MediumDescription,
				HighDescription:   row.HighDescription,
				Weightage:         row.Weight,
			})
		}
		criteria[channel] = converted
	}

	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return models.MarkingScheme{}, fmt.Errorf("encode criteria: %w", err)
	}

	submissionTypes := datatypes.JSONMap{}
	for channel, enabled := range payload.SubmissionTypes {
		submissionTypes[channel] = enabled
	}

	weights := datatypes.JSONMap{}
	for channel, weight := range payload.SubmissionTypeWeights {
		if !payload.SubmissionTypes[channel] {
			continue
		}
		weights[channel] = weight
	}

	scheme := models.MarkingScheme{
		ID:                    uuid.NewString(),
		AssignmentID:          payload.AssignmentID,
		ModuleCode:            payload.ModuleCode,
		Title:                 payload.RubricName,
		Status:                models.SchemeStatusActive,
		Criteria:              datatypes.JSON(criteriaJSON),
		SubmissionTypes:       submissionTypes,
		SubmissionTypeWeights: weights,
		CreatedAt:             s.now(),
		UpdatedAt:             s.now(),
	}

	if err := s.schemes.CreateArchivingPrevious(ctx, &scheme); err != nil {
		return models.MarkingScheme{}, err
	}

	s.logger.Info().
		Str("scheme_id", scheme.ID).
		Str("assignment_id", scheme.AssignmentID).
		Msg("marking scheme created")

	return scheme, nil
}

func (s *markingSchemeService) Get(ctx context.Context, id string) (models.MarkingScheme, error) {
	scheme, err := s.schemes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MarkingScheme{}, ErrMarkingSchemeNotFound
		}
		return models.MarkingScheme{}, err
	}
	return scheme, nil
}

func (s *markingSchemeService) List(ctx context.Context) ([]models.MarkingScheme, error) {
	return s.schemes.List(ctx)
}

func (s *markingSchemeService) GetByAssignment(ctx context.Context, assignmentID string) (models.MarkingScheme, error) {
	scheme, err := s.schemes.ActiveByAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MarkingScheme{}, ErrMarkingSchemeNotFound
		}
		return models.MarkingScheme{}, err
	}
	return scheme, nil
}

func (s *markingSchemeService) Weights(ctx context.Context, assignmentID string) (dto.SchemeWeightsResponse, error) {
	scheme, err := s.GetByAssignment(ctx, assignmentID)
	if err != nil {
		return dto.SchemeWeightsResponse{}, err
	}

	weights := make(map[string]float64, len(scheme.SubmissionTypeWeights))
	for channel := range scheme.SubmissionTypeWeights {
		weights[channel] = scheme.ChannelWeight(channel)
	}

	return dto.SchemeWeightsResponse{
		AssignmentID:          assignmentID,
		SubmissionTypeWeights: weights,
	}, nil
}

// validateWeightSum checks that the weights of enabled channels total
// exactly 100. Weights of disabled channels are ignored.
func validateWeightSum(enabled map[string]bool, weights map[string]float64) error {
	total := 0.0
	for channel, on := range enabled {
		if !on {
			continue
		}
		total += weights[channel]
	}

	if math.Abs(total-100) > 1e-9 {
		return &WeightSumError{Total: total}
	}

	return nil
}
