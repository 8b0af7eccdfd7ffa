package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/models"
)

// CodeRepository defines data operations for code submissions.
type CodeRepository interface {
	Get(ctx context.Context, id string) (models.Code, error)
	FindBySubmission(ctx context.Context, submissionID string) (models.Code, error)
	Create(ctx context.Context, code *models.Code) error
	Update(ctx context.Context, code *models.Code) error
}

type codeRepository struct {
	db *gorm.DB
}

// NewCodeRepository instantiates the repository.
func NewCodeRepository(db *gorm.DB) CodeRepository {
	return &codeRepository{db: db}
}

func (r *codeRepository) Get(ctx context.Context, id string) (models.Code, error) {
	var code models.Code
	if err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error; err != nil {
		return models.Code{}, err
	}
	return code, nil
}

func (r *codeRepository) FindBySubmission(ctx context.Context, submissionID string) (models.Code, error) {
	var code models.Code
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at DESC").
		First(&code).Error; err != nil {
		return models.Code{}, err
	}
	return code, nil
}

func (r *codeRepository) Create(ctx context.Context, code *models.Code) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *codeRepository) Update(ctx context.Context, code *models.Code) error {
	return r.db.WithContext(ctx).Save(code).Error
}
