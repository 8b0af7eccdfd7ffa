package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// Submission service sentinel errors.
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSubmissionExists   = errors.New("submission already exists for this assignment and student")
)

// SubmissionService manages the per-student submission lifecycle.
type SubmissionService interface {
	Create(ctx context.Context, payload dto.SubmissionCreateRequest) (models.Submission, error)
	Get(ctx context.Context, id string) (models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]models.Submission, error)
	Check(ctx context.Context, payload dto.CheckSubmissionRequest) (dto.CheckSubmissionResponse, error)
	AttachCode(ctx context.Context, payload dto.AttachCodeRequest) error
	AttachVideo(ctx context.Context, payload dto.AttachVideoRequest) error
	AttachReport(ctx context.Context, payload dto.AttachReportRequest) error
	UpdateFields(ctx context.Context, payload dto.SubmissionFieldsUpdateRequest) error
	ArtifactIDs(ctx context.Context, id string) (dto.ArtifactIDsResponse, error)
	SubmissionData(ctx context.Context, submissionID string) (dto.SubmissionDashboardResponse, error)
	VivaDashboard(ctx context.Context, assignmentID string) ([]dto.SubmissionDashboardResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	modules     repository.ModuleRepository
	users       repository.UserRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	assignments repository.AssignmentRepository,
	modules repository.ModuleRepository,
	users repository.UserRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		modules:     modules,
		users:       users,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	_, err := s.submissions.FindByAssignmentAndStudent(ctx, payload.AssignmentID, payload.StudentID)
	if err == nil {
		return models.Submission{}, ErrSubmissionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Submission{}, err
	}

	submission := models.Submission{
		ID:           uuid.NewString(),
		AssignmentID: payload.AssignmentID,
		StudentID:    payload.StudentID,
		Status:       models.SubmissionStatusPending,
		CodeID:       payload.CodeID,
		ReportID:     payload.ReportID,
		VideoID:      payload.VideoID,
		Marks:        datatypes.JSONMap{},
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return models.Submission{}, err
	}

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("assignment_id", submission.AssignmentID).
		Str("student_id", submission.StudentID).
		Msg("submission created")

	return submission, nil
}

func (s *submissionService) Get(ctx context.Context, id string) (models.Submission, error) {
	submission, err := s.submissions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}
	return submission, nil
}

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID string) ([]models.Submission, error) {
	return s.submissions.ListByAssignment(ctx, assignmentID)
}

func (s *submissionService) Check(ctx context.Context, payload dto.CheckSubmissionRequest) (dto.CheckSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CheckSubmissionResponse{}, err
	}

	submission, err := s.submissions.FindByAssignmentAndStudent(ctx, payload.AssignmentID, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CheckSubmissionResponse{Exists: false}, nil
		}
		return dto.CheckSubmissionResponse{}, err
	}

	return dto.CheckSubmissionResponse{Exists: true, SubmissionID: submission.ID}, nil
}

func (s *submissionService) AttachCode(ctx context.Context, payload dto.AttachCodeRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}
	return s.updateFields(ctx, payload.SubmissionID, map[string]interface{}{"code_id": payload.CodeID})
}

func (s *submissionService) AttachVideo(ctx context.Context, payload dto.AttachVideoRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}
	return s.updateFields(ctx, payload.SubmissionID, map[string]interface{}{"video_id": payload.VideoID})
}

func (s *submissionService) AttachReport(ctx context.Context, payload dto.AttachReportRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}
	return s.updateFields(ctx, payload.SubmissionID, map[string]interface{}{"report_id": payload.ReportID})
}

func (s *submissionService) UpdateFields(ctx context.Context, payload dto.SubmissionFieldsUpdateRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	// Only artefact ids and status are updatable this way; anything else
	// in the request body is ignored by the DTO shape.
	fields := map[string]interface{}{}
	if payload.CodeID != nil {
		fields["code_id"] = *payload.CodeID
	}
	if payload.ReportID != nil {
		fields["report_id"] = *payload.ReportID
	}
	if payload.VideoID != nil {
		fields["video_id"] = *payload.VideoID
	}
	if payload.Status != nil {
		fields["status"] = *payload.Status
	}
	if len(fields) == 0 {
		return nil
	}

	return s.updateFields(ctx, payload.SubmissionID, fields)
}

func (s *submissionService) updateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = s.now()
	if err := s.submissions.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	return nil
}

func (s *submissionService) ArtifactIDs(ctx context.Context, id string) (dto.ArtifactIDsResponse, error) {
	submission, err := s.Get(ctx, id)
	if err != nil {
		return dto.ArtifactIDsResponse{}, err
	}
	return dto.ArtifactIDsResponse{
		CodeID:   submission.CodeID,
		ReportID: submission.ReportID,
		VideoID:  submission.VideoID,
	}, nil
}

// SubmissionData joins one submission with its assignment, module and
// student account. Unlike VivaDashboard, every link is mandatory: a
// missing assignment, module or student fails the lookup.
func (s *submissionService) SubmissionData(ctx context.Context, submissionID string) (dto.SubmissionDashboardResponse, error) {
	submission, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionDashboardResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionDashboardResponse{}, err
	}

	assignment, err := s.assignments.Get(ctx, submission.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionDashboardResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionDashboardResponse{}, err
	}

	module, err := s.modules.Get(ctx, assignment.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionDashboardResponse{}, ErrModuleNotFound
		}
		return dto.SubmissionDashboardResponse{}, err
	}

	student, err := s.users.Get(ctx, submission.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionDashboardResponse{}, ErrUserNotFound
		}
		return dto.SubmissionDashboardResponse{}, err
	}

	return dto.SubmissionDashboardResponse{
		AssignmentID:   submission.AssignmentID,
		SubmissionID:   submission.ID,
		ModuleName:     module.Name,
		ModuleSemester: module.Semester,
		ModuleYear:     module.Year,
		AssignmentName: assignment.Name,
		StudentEmail:   student.Email,
		SubmittedDate:  submission.CreatedAt,
	}, nil
}

// VivaDashboard joins submissions with their assignment, module and student
// account. Rows whose related records are missing are skipped rather than
// failing the whole dashboard.
func (s *submissionService) VivaDashboard(ctx context.Context, assignmentID string) ([]dto.SubmissionDashboardResponse, error) {
	assignment, err := s.assignments.Get(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	module, err := s.modules.Get(ctx, assignment.ModuleID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	submissions, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.SubmissionDashboardResponse, 0, len(submissions))
	for _, submission := range submissions {
		row := dto.SubmissionDashboardResponse{
			AssignmentID:   assignmentID,
			SubmissionID:   submission.ID,
			ModuleName:     module.Name,
			ModuleSemester: module.Semester,
			ModuleYear:     module.Year,
			AssignmentName: assignment.Name,
			SubmittedDate:  submission.CreatedAt,
		}
		if student, err := s.users.Get(ctx, submission.StudentID); err == nil {
			row.StudentEmail = student.Email
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}
