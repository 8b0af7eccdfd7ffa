package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// ErrVideoMarksNotFound indicates no video marks exist for the submission.
var ErrVideoMarksNotFound = errors.New("video marks not found")

var gradingTracer = otel.Tracer("github.com/saat-labs/saat-api/internal/service/grading")

// GradingService records criterion marks and aggregates them into channel
// totals and the weighted final grade.
type GradingService interface {
	SaveMarks(ctx context.Context, payload dto.SaveMarksRequest) (models.Submission, error)
	ChannelTotals(ctx context.Context, submissionID string) (dto.ChannelTotalsResponse, error)
	FinalGrade(ctx context.Context, submissionID string) (dto.FinalGradeResponse, error)
	SaveVideoMarks(ctx context.Context, payload dto.SaveVideoMarksRequest) (models.VideoMark, error)
	VideoMarks(ctx context.Context, submissionID string) (models.VideoMark, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	codes       repository.CodeRepository
	reports     repository.ReportRepository
	videoMarks  repository.VideoMarkRepository
	schemes     repository.MarkingSchemeRepository
	notifier    NotificationService
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradingService constructs a GradingService instance.
func NewGradingService(
	submissions repository.SubmissionRepository,
	codes repository.CodeRepository,
	reports repository.ReportRepository,
	videoMarks repository.VideoMarkRepository,
	schemes repository.MarkingSchemeRepository,
	notifier NotificationService,
	validate *validator.Validate,
	logger zerolog.Logger,
) GradingService {
	return &gradingService{
		submissions: submissions,
		codes:       codes,
		reports:     reports,
		videoMarks:  videoMarks,
		schemes:     schemes,
		notifier:    notifier,
		validator:   validate,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		now:         time.Now,
	}
}

// SaveMarks merges the given per-channel criterion marks into the
// submission's stored marks. Channels absent from the payload keep their
// existing entries.
func (s *gradingService) SaveMarks(ctx context.Context, payload dto.SaveMarksRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	submission, err := s.submissions.Get(ctx, payload.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	if submission.Marks == nil {
		submission.Marks = datatypes.JSONMap{}
	}
	for channel, criteria := range payload.Marks {
		merged := submission.ChannelMarks(channel)
		if merged == nil {
			merged = map[string]interface{}{}
		}
		for criterion, mark := range criteria {
			merged[criterion] = mark
		}
		submission.Marks[channel] = merged
	}
	submission.UpdatedAt = s.now()

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return models.Submission{}, err
	}

	s.notifier.MarksSaved(ctx, submission.ID)

	s.logger.Info().
		Str("submission_id", submission.ID).
		Int("channels", len(payload.Marks)).
		Msg("marks saved")

	return submission, nil
}

func (s *gradingService) ChannelTotals(ctx context.Context, submissionID string) (dto.ChannelTotalsResponse, error) {
	submission, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ChannelTotalsResponse{}, ErrSubmissionNotFound
		}
		return dto.ChannelTotalsResponse{}, err
	}

	totals, err := s.channelTotals(ctx, submission)
	if err != nil {
		return dto.ChannelTotalsResponse{}, err
	}

	return dto.ChannelTotalsResponse{
		SubmissionID:     submissionID,
		TotalVivaMarks:   totals[models.ChannelViva],
		TotalCodeMarks:   totals[models.ChannelCode],
		TotalVideoMarks:  totals[models.ChannelVideo],
		TotalReportMarks: totals[models.ChannelReport],
	}, nil
}

// FinalGrade computes sum(weight/100 * channel total) over the active
// marking scheme's enabled channels. Disabled channels never count, even
// when a stale weight or stray marks exist for them; enabled channels
// with no recorded data contribute zero.
func (s *gradingService) FinalGrade(ctx context.Context, submissionID string) (dto.FinalGradeResponse, error) {
	ctx, span := gradingTracer.Start(ctx, "grading.FinalGrade")
	defer span.End()
	span.SetAttributes(attribute.String("submission.id", submissionID))

	submission, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FinalGradeResponse{}, ErrSubmissionNotFound
		}
		return dto.FinalGradeResponse{}, err
	}

	scheme, err := s.schemes.ActiveByAssignment(ctx, submission.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FinalGradeResponse{}, ErrMarkingSchemeNotFound
		}
		return dto.FinalGradeResponse{}, err
	}

	totals, err := s.channelTotals(ctx, submission)
	if err != nil {
		return dto.FinalGradeResponse{}, err
	}

	weights := map[string]float64{}
	grade := 0.0
	for _, channel := range models.Channels() {
		if !scheme.ChannelEnabled(channel) {
			continue
		}
		weight := scheme.ChannelWeight(channel)
		weights[channel] = weight
		grade += weight / 100 * totals[channel].Total
	}

	return dto.FinalGradeResponse{
		SubmissionID: submissionID,
		AssignmentID: submission.AssignmentID,
		FinalGrade:   grade,
		Weights:      weights,
		Channels:     totals,
	}, nil
}

func (s *gradingService) SaveVideoMarks(ctx context.Context, payload dto.SaveVideoMarksRequest) (models.VideoMark, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.VideoMark{}, err
	}

	mark, err := s.videoMarks.FindBySubmission(ctx, payload.SubmissionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.VideoMark{}, err
		}
		mark = models.VideoMark{
			ID:           uuid.NewString(),
			SubmissionID: payload.SubmissionID,
			Marks:        datatypes.JSONMap{},
			CreatedAt:    s.now(),
		}
	}
	if mark.Marks == nil {
		mark.Marks = datatypes.JSONMap{}
	}
	for criterion, value := range payload.Marks {
		mark.Marks[criterion] = value
	}
	mark.UpdatedAt = s.now()

	if err := s.videoMarks.Save(ctx, &mark); err != nil {
		return models.VideoMark{}, err
	}

	return mark, nil
}

func (s *gradingService) VideoMarks(ctx context.Context, submissionID string) (models.VideoMark, error) {
	mark, err := s.videoMarks.FindBySubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.VideoMark{}, ErrVideoMarksNotFound
		}
		return models.VideoMark{}, err
	}
	return mark, nil
}

func (s *gradingService) channelTotals(ctx context.Context, submission models.Submission) (map[string]dto.ChannelTotal, error) {
	totals := map[string]dto.ChannelTotal{
		models.ChannelViva:   sumMarks(submission.ChannelMarks(models.ChannelViva)),
		models.ChannelCode:   {},
		models.ChannelVideo:  {},
		models.ChannelReport: {},
	}

	code, err := s.codes.FindBySubmission(ctx, submission.ID)
	if err == nil {
		totals[models.ChannelCode] = sumMarks(code.Marks)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	video, err := s.videoMarks.FindBySubmission(ctx, submission.ID)
	if err == nil {
		totals[models.ChannelVideo] = sumMarks(video.Marks)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if submission.ReportID != nil {
		report, err := s.reports.Get(ctx, *submission.ReportID)
		if err == nil && report.Mark != nil {
			totals[models.ChannelReport] = dto.ChannelTotal{Total: *report.Mark, Present: true}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return totals, nil
}

// sumMarks adds up the numeric values of a criterion mark map. Entries
// that are not numbers are skipped. A nil or empty map yields an absent
// total.
func sumMarks(marks map[string]interface{}) dto.ChannelTotal {
	if len(marks) == 0 {
		return dto.ChannelTotal{}
	}
	total := 0.0
	counted := false
	for _, value := range marks {
		number, ok := asNumberFromJSON(value)
		if !ok {
			continue
		}
		total += number
		counted = true
	}
	return dto.ChannelTotal{Total: total, Present: counted}
}

func asNumberFromJSON(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
