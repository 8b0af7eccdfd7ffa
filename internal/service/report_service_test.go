package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
)

type reportRepoFake struct {
	reports []models.ReportSubmission
}

func (r *reportRepoFake) Get(ctx context.Context, id string) (models.ReportSubmission, error) {
	for _, report := range r.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return models.ReportSubmission{}, gorm.ErrRecordNotFound
}

func (r *reportRepoFake) List(ctx context.Context) ([]models.ReportSubmission, error) {
	return r.reports, nil
}

func (r *reportRepoFake) ListByMarkingReference(ctx context.Context, markingReference string) ([]models.ReportSubmission, error) {
	matched := []models.ReportSubmission{}
	for _, report := range r.reports {
		if report.MarkingReference == markingReference {
			matched = append(matched, report)
		}
	}
	return matched, nil
}

func (r *reportRepoFake) Create(ctx context.Context, report *models.ReportSubmission) error {
	r.reports = append(r.reports, *report)
	return nil
}

func (r *reportRepoFake) Update(ctx context.Context, report *models.ReportSubmission) error {
	for i := range r.reports {
		if r.reports[i].ID == report.ID {
			r.reports[i] = *report
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *reportRepoFake) SaveAll(ctx context.Context, reports []models.ReportSubmission) error {
	for i := range reports {
		if err := r.Update(ctx, &reports[i]); err != nil {
			return err
		}
	}
	return nil
}

type uploaderFake struct {
	uploads []string
}

func (u *uploaderFake) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	u.uploads = append(u.uploads, name)
	return "https://files.example.com/" + name, nil
}

func newReportFixture(repo *reportRepoFake, uploader FileUploader) ReportService {
	return NewReportService(repo, uploader, NewNotificationService(nil, testLogger()), testValidator(), testLogger())
}

func TestReportCreateDefaultsStatus(t *testing.T) {
	repo := &reportRepoFake{}
	svc := newReportFixture(repo, &uploaderFake{})

	report, err := svc.Create(context.Background(), dto.ReportCreateRequest{
		ModuleCode:       "CS3010",
		StudentID:        "student-1",
		SubmissionReport: "https://files.example.com/report.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusSubmitted, report.Status)
	require.Len(t, repo.reports, 1)
}

func TestReportUploadRejectsNonPDF(t *testing.T) {
	uploader := &uploaderFake{}
	svc := newReportFixture(&reportRepoFake{}, uploader)

	_, err := svc.Upload(context.Background(), "notes.txt", strings.NewReader("plain text, not a pdf"))
	require.True(t, errors.Is(err, ErrUnsupportedUpload))
	require.Empty(t, uploader.uploads)
}

func TestReportUploadAcceptsPDF(t *testing.T) {
	uploader := &uploaderFake{}
	svc := newReportFixture(&reportRepoFake{}, uploader)

	pdf := bytes.NewReader([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj"))
	resp, err := svc.Upload(context.Background(), "report.pdf", pdf)
	require.NoError(t, err)
	require.Equal(t, "https://files.example.com/report.pdf", resp.URL)
	require.Equal(t, []string{"report.pdf"}, uploader.uploads)
}

func TestReportReviewValidationLeavesReportUntouched(t *testing.T) {
	repo := &reportRepoFake{reports: []models.ReportSubmission{{
		ID:     "report-1",
		Status: models.ReportStatusSubmitted,
	}}}
	svc := newReportFixture(repo, &uploaderFake{})

	over := 101.0
	_, err := svc.Review(context.Background(), "report-1", dto.ReportReviewRequest{Mark: &over})
	require.Error(t, err)

	stored, getErr := repo.Get(context.Background(), "report-1")
	require.NoError(t, getErr)
	require.Nil(t, stored.Mark)
	require.Equal(t, models.ReportStatusSubmitted, stored.Status)
}

func TestReportReviewRecordsMark(t *testing.T) {
	repo := &reportRepoFake{reports: []models.ReportSubmission{{
		ID:     "report-1",
		Status: models.ReportStatusSubmitted,
	}}}
	svc := newReportFixture(repo, &uploaderFake{})

	mark := 85.0
	reviewed, err := svc.Review(context.Background(), "report-1", dto.ReportReviewRequest{
		Mark:               &mark,
		InstructorFeedback: "solid work",
	})
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusReviewed, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedDate)
	require.Equal(t, 85.0, *reviewed.Mark)
}

func TestReportPublishKeepsPreviousStatus(t *testing.T) {
	mark := 70.0
	repo := &reportRepoFake{reports: []models.ReportSubmission{{
		ID:     "report-1",
		Mark:   &mark,
		Status: models.ReportStatusReviewed,
	}}}
	svc := newReportFixture(repo, &uploaderFake{})

	published, err := svc.Publish(context.Background(), "report-1")
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusPublished, published.Status)
	require.Equal(t, models.ReportStatusReviewed, published.PreviousStatus)

	// publishing again is a no-op
	again, err := svc.Publish(context.Background(), "report-1")
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusReviewed, again.PreviousStatus)
}

func TestBulkPublishReportsUnreviewedFailures(t *testing.T) {
	mark := 65.0
	repo := &reportRepoFake{reports: []models.ReportSubmission{
		{ID: "report-1", MarkingReference: "CW1", Mark: &mark, Status: models.ReportStatusReviewed},
		{ID: "report-2", MarkingReference: "CW1", Status: models.ReportStatusSubmitted},
		{ID: "report-3", MarkingReference: "CW1", Mark: &mark, Status: models.ReportStatusPublished},
	}}
	svc := newReportFixture(repo, &uploaderFake{})

	result, err := svc.PublishByMarkingReference(context.Background(), "CW1")
	require.NoError(t, err)
	require.Equal(t, 1, result.UpdatedCount)
	require.Len(t, result.FailedUpdates, 1)
	require.Equal(t, "report-2", result.FailedUpdates[0].ReportID)

	published, err := repo.Get(context.Background(), "report-1")
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusPublished, published.Status)
}

func TestBulkPublishZeroRowsIsSuccess(t *testing.T) {
	svc := newReportFixture(&reportRepoFake{}, &uploaderFake{})

	result, err := svc.PublishByMarkingReference(context.Background(), "unknown-reference")
	require.NoError(t, err)
	require.Zero(t, result.UpdatedCount)
	require.Empty(t, result.FailedUpdates)
}
