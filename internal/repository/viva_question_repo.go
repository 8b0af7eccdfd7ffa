package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/models"
)

// VivaQuestionRepository defines data operations for viva question sets.
// Sets are append-only; there is no update or delete.
type VivaQuestionRepository interface {
	Get(ctx context.Context, documentID string) (models.VivaQuestionSet, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]models.VivaQuestionSet, error)
	Create(ctx context.Context, set *models.VivaQuestionSet) error
}

type vivaQuestionRepository struct {
	db *gorm.DB
}

// NewVivaQuestionRepository instantiates the repository.
func NewVivaQuestionRepository(db *gorm.DB) VivaQuestionRepository {
	return &vivaQuestionRepository{db: db}
}

func (r *vivaQuestionRepository) Get(ctx context.Context, documentID string) (models.VivaQuestionSet, error) {
	var set models.VivaQuestionSet
	if err := r.db.WithContext(ctx).First(&set, "document_id = ?", documentID).Error; err != nil {
		return models.VivaQuestionSet{}, err
	}
	return set, nil
}

func (r *vivaQuestionRepository) ListBySubmission(ctx context.Context, submissionID string) ([]models.VivaQuestionSet, error) {
	var sets []models.VivaQuestionSet
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at DESC").
		Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *vivaQuestionRepository) Create(ctx context.Context, set *models.VivaQuestionSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}
