package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/models"
)

// VideoMarkRepository defines data operations for video channel marks.
type VideoMarkRepository interface {
	FindBySubmission(ctx context.Context, submissionID string) (models.VideoMark, error)
	Save(ctx context.Context, mark *models.VideoMark) error
}

type videoMarkRepository struct {
	db *gorm.DB
}

// NewVideoMarkRepository instantiates the repository.
func NewVideoMarkRepository(db *gorm.DB) VideoMarkRepository {
	return &videoMarkRepository{db: db}
}

func (r *videoMarkRepository) FindBySubmission(ctx context.Context, submissionID string) (models.VideoMark, error) {
	var mark models.VideoMark
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&mark).Error; err != nil {
		return models.VideoMark{}, err
	}
	return mark, nil
}

func (r *videoMarkRepository) Save(ctx context.Context, mark *models.VideoMark) error {
	return r.db.WithContext(ctx).Save(mark).Error
}
