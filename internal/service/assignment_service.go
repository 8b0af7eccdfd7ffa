package service

import (
	"context"
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
)

// Assignment service sentinel errors.
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidDeadline    = errors.New("deadline must be RFC3339 formatted")
)

// AssignmentService manages assignment definitions.
type AssignmentService interface {
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error)
	Get(ctx context.Context, id string) (models.Assignment, error)
	ListByModule(ctx context.Context, moduleID string) ([]models.Assignment, error)
	Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (models.Assignment, error)
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignments repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	deadline, err := parseDeadline(payload.Deadline)
	if err != nil {
		return models.Assignment{}, err
	}

	submissionTypes := datatypes.JSONMap{}
	for channel, enabled := range payload.SubmissionTypes {
		submissionTypes[channel] = enabled
	}

	assignment := models.Assignment{
		ID:              uuid.NewString(),
		ModuleID:        payload.ModuleID,
		Name:            payload.Name,
		Description:     payload.Description,
		Deadline:        deadline,
		SubmissionTypes: submissionTypes,
		MarkingCriteria: datatypes.JSON(payload.MarkingCriteria),
		Details:         datatypes.JSON(payload.Details),
		CreatedAt:       s.now(),
		UpdatedAt:       s.now(),
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return models.Assignment{}, err
	}

	s.logger.Info().Str("assignment_id", assignment.ID).Str("module_id", assignment.ModuleID).Msg("assignment created")

	return assignment, nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (models.Assignment, error) {
	assignment, err := s.assignments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (s *assignmentService) ListByModule(ctx context.Context, moduleID string) ([]models.Assignment, error) {
	return s.assignments.ListByModule(ctx, moduleID)
}

func (s *assignmentService) Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (models.Assignment, error) {
	assignment, err := s.assignments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}

	if payload.Name != nil {
		assignment.Name = *payload.Name
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.Deadline != nil {
		deadline, err := parseDeadline(*payload.Deadline)
		if err != nil {
			return models.Assignment{}, err
		}
		assignment.Deadline = deadline
	}
	assignment.UpdatedAt = s.now()

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return models.Assignment{}, err
	}

	s.logger.Info().Str("assignment_id", assignment.ID).Msg("assignment updated")

	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.assignments.Get(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("assignment_id", id).Msg("assignment deleted")

	return nil
}

func parseDeadline(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	deadline, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDeadline, err)
	}

	return deadline, nil
}
