package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// ErrModuleNotFound indicates the referenced module does not exist.
var ErrModuleNotFound = errors.New("module not found")

// ModuleService manages course modules.
type ModuleService interface {
	Create(ctx context.Context, payload dto.ModuleCreateRequest) (models.Module, error)
	Get(ctx context.Context, id string) (models.Module, error)
	List(ctx context.Context) ([]models.Module, error)
}

type moduleService struct {
	modules   repository.ModuleRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewModuleService constructs a ModuleService instance.
func NewModuleService(modules repository.ModuleRepository, validate *validator.Validate, logger zerolog.Logger) ModuleService {
	return &moduleService{
		modules:   modules,
		validator: validate,
		logger:    logger.With().Str("component", "module_service").Logger(),
		now:       time.Now,
	}
}

func (s *moduleService) Create(ctx context.Context, payload dto.ModuleCreateRequest) (models.Module, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Module{}, err
	}

	module := models.Module{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Year:      payload.Year,
		Semester:  payload.Semester,
		EnrollKey: payload.EnrollKey,
		CreatedAt: s.now(),
	}

	if err := s.modules.Create(ctx, &module); err != nil {
		return models.Module{}, err
	}

	s.logger.Info().Str("module_id", module.ID).Str("name", module.Name).Msg("module created")

	return module, nil
}

func (s *moduleService) Get(ctx context.Context, id string) (models.Module, error) {
	module, err := s.modules.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Module{}, ErrModuleNotFound
		}
		return models.Module{}, err
	}
	return module, nil
}

func (s *moduleService) List(ctx context.Context) ([]models.Module, error) {
	return s.modules.List(ctx)
}
