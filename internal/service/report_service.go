package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// Report service sentinel errors.
var (
	ErrReportNotFound    = errors.New("report not found")
	ErrUnsupportedUpload = errors.New("unsupported report file type")
)

// FileUploader pushes a document to object storage and returns its URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ReportService manages report submissions through their review and
// publication lifecycle.
type ReportService interface {
	Create(ctx context.Context, payload dto.ReportCreateRequest) (models.ReportSubmission, error)
	Get(ctx context.Context, id string) (models.ReportSubmission, error)
	List(ctx context.Context) ([]models.ReportSubmission, error)
	Upload(ctx context.Context, name string, reader io.Reader) (dto.ReportUploadResponse, error)
	Review(ctx context.Context, id string, payload dto.ReportReviewRequest) (models.ReportSubmission, error)
	Publish(ctx context.Context, id string) (models.ReportSubmission, error)
	PublishByMarkingReference(ctx context.Context, markingReference string) (dto.BulkPublishResponse, error)
	PublishAll(ctx context.Context) (dto.BulkPublishResponse, error)
}

type reportService struct {
	reports   repository.ReportRepository
	uploader  FileUploader
	notifier  NotificationService
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReportService constructs a ReportService instance.
func NewReportService(
	reports repository.ReportRepository,
	uploader FileUploader,
	notifier NotificationService,
	validate *validator.Validate,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reports:   reports,
		uploader:  uploader,
		notifier:  notifier,
		validator: validate,
		logger:    logger.With().Str("component", "report_service").Logger(),
		now:       time.Now,
	}
}

func (s *reportService) Create(ctx context.Context, payload dto.ReportCreateRequest) (models.ReportSubmission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ReportSubmission{}, err
	}

	status := payload.Status
	if status == "" {
		status = models.ReportStatusSubmitted
	}

	report := models.ReportSubmission{
		ID:               uuid.NewString(),
		ModuleCode:       payload.ModuleCode,
		StudentID:        payload.StudentID,
		SubmissionReport: payload.SubmissionReport,
		AnalysisReport:   payload.AnalysisReport,
		AIContent:        datatypes.JSON(payload.AIContent),
		Plagiarism:       datatypes.JSON(payload.Plagiarism),
		Mark:             payload.Mark,
		MarkingReference: payload.MarkingReference,
		Status:           status,
		Summary:          payload.Summary,
		SubmissionDate:   s.now(),
		UpdatedAt:        s.now(),
	}

	if err := s.reports.Create(ctx, &report); err != nil {
		return models.ReportSubmission{}, err
	}

	s.logger.Info().
		Str("report_id", report.ID).
		Str("student_id", report.StudentID).
		Msg("report submitted")

	return report, nil
}

func (s *reportService) Get(ctx context.Context, id string) (models.ReportSubmission, error) {
	report, err := s.reports.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ReportSubmission{}, ErrReportNotFound
		}
		return models.ReportSubmission{}, err
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context) ([]models.ReportSubmission, error) {
	return s.reports.List(ctx)
}

// Upload stores a report document and returns its URL. Only PDF files are
// accepted; the type is sniffed from content, not taken from the filename.
func (s *reportService) Upload(ctx context.Context, name string, reader io.Reader) (dto.ReportUploadResponse, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return dto.ReportUploadResponse{}, fmt.Errorf("read upload: %w", err)
	}

	detected := mimetype.Detect(data)
	if !detected.Is("application/pdf") {
		return dto.ReportUploadResponse{}, fmt.Errorf("%w: %s", ErrUnsupportedUpload, detected.String())
	}

	url, err := s.uploader.Upload(ctx, name, bytes.NewReader(data))
	if err != nil {
		return dto.ReportUploadResponse{}, err
	}

	return dto.ReportUploadResponse{URL: url}, nil
}

// Review records the instructor's mark and feedback. A payload failing
// validation leaves the stored report untouched.
func (s *reportService) Review(ctx context.Context, id string, payload dto.ReportReviewRequest) (models.ReportSubmission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ReportSubmission{}, err
	}

	report, err := s.Get(ctx, id)
	if err != nil {
		return models.ReportSubmission{}, err
	}

	reviewedAt := s.now()
	report.Mark = payload.Mark
	report.InstructorFeedback = payload.InstructorFeedback
	report.Status = models.ReportStatusReviewed
	report.ReviewedDate = &reviewedAt
	report.UpdatedAt = reviewedAt

	if err := s.reports.Update(ctx, &report); err != nil {
		return models.ReportSubmission{}, err
	}

	return report, nil
}

// Publish flips a report to published and remembers the status it came
// from. Publishing an already published report is a no-op.
func (s *reportService) Publish(ctx context.Context, id string) (models.ReportSubmission, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return models.ReportSubmission{}, err
	}

	if report.Status == models.ReportStatusPublished {
		return report, nil
	}

	report.PreviousStatus = report.Status
	report.Status = models.ReportStatusPublished
	report.UpdatedAt = s.now()

	if err := s.reports.Update(ctx, &report); err != nil {
		return models.ReportSubmission{}, err
	}

	s.notifier.ReportPublished(ctx, report.ID, report.StudentID)

	return report, nil
}

func (s *reportService) PublishByMarkingReference(ctx context.Context, markingReference string) (dto.BulkPublishResponse, error) {
	reports, err := s.reports.ListByMarkingReference(ctx, markingReference)
	if err != nil {
		return dto.BulkPublishResponse{}, err
	}
	return s.publishBatch(ctx, reports)
}

func (s *reportService) PublishAll(ctx context.Context) (dto.BulkPublishResponse, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return dto.BulkPublishResponse{}, err
	}
	return s.publishBatch(ctx, reports)
}

// publishBatch publishes every unpublished report in the slice. Matching
// zero rows is a successful publish of nothing. Reports that cannot be
// published are reported individually instead of failing the batch.
func (s *reportService) publishBatch(ctx context.Context, reports []models.ReportSubmission) (dto.BulkPublishResponse, error) {
	pending := make([]models.ReportSubmission, 0, len(reports))
	failed := []dto.FailedUpdate{}
	for _, report := range reports {
		if report.Status == models.ReportStatusPublished {
			continue
		}
		if !report.IsReviewed() {
			failed = append(failed, dto.FailedUpdate{
				ReportID: report.ID,
				Reason:   "report has not been reviewed",
			})
			continue
		}
		report.PreviousStatus = report.Status
		report.Status = models.ReportStatusPublished
		report.UpdatedAt = s.now()
		pending = append(pending, report)
	}

	if len(pending) > 0 {
		if err := s.reports.SaveAll(ctx, pending); err != nil {
			return dto.BulkPublishResponse{}, err
		}
		for _, report := range pending {
			s.notifier.ReportPublished(ctx, report.ID, report.StudentID)
		}
	}

	s.logger.Info().
		Int("published", len(pending)).
		Int("failed", len(failed)).
		Msg("bulk publish completed")

	return dto.BulkPublishResponse{UpdatedCount: len(pending), FailedUpdates: failed}, nil
}
