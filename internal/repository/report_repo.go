package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/models"
)

// ReportRepository defines data operations for report submissions.
type ReportRepository interface {
	Get(ctx context.Context, id string) (models.ReportSubmission, error)
	List(ctx context.Context) ([]models.ReportSubmission, error)
	ListByMarkingReference(ctx context.Context, markingReference string) ([]models.ReportSubmission, error)
	Create(ctx context.Context, report *models.ReportSubmission) error
	Update(ctx context.Context, report *models.ReportSubmission) error
	// SaveAll persists the given reports in a single transaction so a bulk
	// publish applies atomically. Concurrent creates are not fenced out;
	// the batch is atomic only relative to its own members.
	SaveAll(ctx context.Context, reports []models.ReportSubmission) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository instantiates the repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Get(ctx context.Context, id string) (models.ReportSubmission, error) {
	var report models.ReportSubmission
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return models.ReportSubmission{}, err
	}
	return report, nil
}

func (r *reportRepository) List(ctx context.Context) ([]models.ReportSubmission, error) {
	var reports []models.ReportSubmission
	if err := r.db.WithContext(ctx).Order("submission_date DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListByMarkingReference(ctx context.Context, markingReference string) ([]models.ReportSubmission, error) {
	var reports []models.ReportSubmission
	if err := r.db.WithContext(ctx).
		Where("marking_reference = ?", markingReference).
		Order("submission_date DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) Create(ctx context.Context, report *models.ReportSubmission) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) Update(ctx context.Context, report *models.ReportSubmission) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) SaveAll(ctx context.Context, reports []models.ReportSubmission) error {
	if len(reports) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range reports {
			if err := tx.Save(&reports[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
