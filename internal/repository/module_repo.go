package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/models"
)

// ModuleRepository defines data operations for course modules.
type ModuleRepository interface {
	Get(ctx context.Context, id string) (models.Module, error)
	List(ctx context.Context) ([]models.Module, error)
	Create(ctx context.Context, module *models.Module) error
}

type moduleRepository struct {
	db *gorm.DB
}

// NewModuleRepository instantiates the repository.
func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) Get(ctx context.Context, id string) (models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).First(&module, "id = ?", id).Error; err != nil {
		return models.Module{}, err
	}
	return module, nil
}

func (r *moduleRepository) List(ctx context.Context) ([]models.Module, error) {
	var modules []models.Module
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepository) Create(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}
