package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/models"
)

// MarkingSchemeRepository defines data operations for marking schemes.
type MarkingSchemeRepository interface {
	Get(ctx context.Context, id string) (models.MarkingScheme, error)
	List(ctx context.Context) ([]models.MarkingScheme, error)
	// ActiveByAssignment returns the newest Active scheme for the
	// assignment, which is the deterministic tie-break when historical
	// duplicates exist.
	ActiveByAssignment(ctx context.Context, assignmentID string) (models.MarkingScheme, error)
	// CreateArchivingPrevious persists the scheme and archives any Active
	// scheme already bound to the same assignment, in one transaction.
	CreateArchivingPrevious(ctx context.Context, scheme *models.MarkingScheme) error
}

type markingSchemeRepository struct {
	db *gorm.DB
}

// NewMarkingSchemeRepository instantiates the repository.
func NewMarkingSchemeRepository(db *gorm.DB) MarkingSchemeRepository {
	return &markingSchemeRepository{db: db}
}

func (r *markingSchemeRepository) Get(ctx context.Context, id string) (models.MarkingScheme, error) {
	var scheme models.MarkingScheme
	if err := r.db.WithContext(ctx).First(&scheme, "id = ?", id).Error; err != nil {
		return models.MarkingScheme{}, err
	}
	return scheme, nil
}

func (r *markingSchemeRepository) List(ctx context.Context) ([]models.MarkingScheme, error) {
	var schemes []models.MarkingScheme
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&schemes).Error; err != nil {
		return nil, err
	}
	return schemes, nil
}

func (r *markingSchemeRepository) ActiveByAssignment(ctx context.Context, assignmentID string) (models.MarkingScheme, error) {
	var scheme models.MarkingScheme
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Where("status = ?", models.SchemeStatusActive).
		Order("created_at DESC").
		First(&scheme).Error; err != nil {
		return models.MarkingScheme{}, err
	}
	return scheme, nil
}

func (r *markingSchemeRepository) CreateArchivingPrevious(ctx context.Context, scheme *models.MarkingScheme) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if scheme.AssignmentID != "" {
			if err := tx.Model(&models.MarkingScheme{}).
				Where("assignment_id = ?", scheme.AssignmentID).
				Where("status = ?", models.SchemeStatusActive).
				Update("status", models.SchemeStatusArchived).Error; err != nil {
				return err
			}
		}
		return tx.Create(scheme).Error
	})
}
