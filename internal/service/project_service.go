package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
	"github.com/saat-labs/saat-api/internal/repository"
)

// ProjectService assembles cross-entity views: the full assessment view
// for one submission and the admin dashboard aggregate.
type ProjectService interface {
	Overview(ctx context.Context, submissionID string) (dto.ProjectOverviewResponse, error)
	SiteDetails(ctx context.Context) (dto.SiteDetailsResponse, error)
}

type projectService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	modules     repository.ModuleRepository
	users       repository.UserRepository
	codes       repository.CodeRepository
	reports     repository.ReportRepository
	videoMarks  repository.VideoMarkRepository
	vivaSets    repository.VivaQuestionRepository
	schemes     repository.MarkingSchemeRepository
	grading     GradingService
	logger      zerolog.Logger
}

// NewProjectService constructs a ProjectService instance.
func NewProjectService(
	submissions repository.SubmissionRepository,
	assignments repository.AssignmentRepository,
	modules repository.ModuleRepository,
	users repository.UserRepository,
	codes repository.CodeRepository,
	reports repository.ReportRepository,
	videoMarks repository.VideoMarkRepository,
	vivaSets repository.VivaQuestionRepository,
	schemes repository.MarkingSchemeRepository,
	grading GradingService,
	logger zerolog.Logger,
) ProjectService {
	return &projectService{
		submissions: submissions,
		assignments: assignments,
		modules:     modules,
		users:       users,
		codes:       codes,
		reports:     reports,
		videoMarks:  videoMarks,
		vivaSets:    vivaSets,
		schemes:     schemes,
		grading:     grading,
		logger:      logger.With().Str("component", "project_service").Logger(),
	}
}

// Overview joins the submission with all of its artefacts, the owning
// assignment and module, the student account, recorded marks and the
// active marking scheme. Missing artefacts leave their section empty; a
// missing submission is the only hard failure.
func (s *projectService) Overview(ctx context.Context, submissionID string) (dto.ProjectOverviewResponse, error) {
	submission, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectOverviewResponse{}, ErrSubmissionNotFound
		}
		return dto.ProjectOverviewResponse{}, err
	}

	response := dto.ProjectOverviewResponse{Submission: submission}

	if assignment, err := s.assignments.Get(ctx, submission.AssignmentID); err == nil {
		response.Assignment = &assignment
		if module, err := s.modules.Get(ctx, assignment.ModuleID); err == nil {
			response.Module = &module
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectOverviewResponse{}, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProjectOverviewResponse{}, err
	}

	if student, err := s.users.Get(ctx, submission.StudentID); err == nil {
		response.Student = &student
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProjectOverviewResponse{}, err
	}

	if code, err := s.codes.FindBySubmission(ctx, submissionID); err == nil {
		response.Code = &code
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProjectOverviewResponse{}, err
	}

	if submission.ReportID != nil {
		if report, err := s.reports.Get(ctx, *submission.ReportID); err == nil {
			response.Report = &report
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectOverviewResponse{}, err
		}
	}

	if marks, err := s.videoMarks.FindBySubmission(ctx, submissionID); err == nil {
		response.VideoMarks = &marks
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProjectOverviewResponse{}, err
	}

	sets, err := s.vivaSets.ListBySubmission(ctx, submissionID)
	if err != nil {
		return dto.ProjectOverviewResponse{}, err
	}
	response.VivaSets = sets

	if scheme, err := s.schemes.ActiveByAssignment(ctx, submission.AssignmentID); err == nil {
		weights := make(map[string]float64, len(scheme.SubmissionTypeWeights))
		for channel := range scheme.SubmissionTypeWeights {
			weights[channel] = scheme.ChannelWeight(channel)
		}
		response.Scheme = &dto.ProjectSchemeSummary{
			SchemeID:              scheme.ID,
			Title:                 scheme.Title,
			SubmissionTypeWeights: weights,
			Criteria:              json.RawMessage(scheme.Criteria),
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProjectOverviewResponse{}, err
	}

	totals, err := s.grading.ChannelTotals(ctx, submissionID)
	if err != nil {
		return dto.ProjectOverviewResponse{}, err
	}
	response.ChannelGrade = map[string]dto.ChannelTotal{
		models.ChannelViva:   totals.TotalVivaMarks,
		models.ChannelCode:   totals.TotalCodeMarks,
		models.ChannelVideo:  totals.TotalVideoMarks,
		models.ChannelReport: totals.TotalReportMarks,
	}

	return response, nil
}

// SiteDetails builds the admin dashboard aggregate: every module with its
// assignments and their submissions, plus all user accounts.
func (s *projectService) SiteDetails(ctx context.Context) (dto.SiteDetailsResponse, error) {
	modules, err := s.modules.List(ctx)
	if err != nil {
		return dto.SiteDetailsResponse{}, err
	}

	details := make([]dto.ModuleDetails, 0, len(modules))
	for _, module := range modules {
		assignments, err := s.assignments.ListByModule(ctx, module.ID)
		if err != nil {
			return dto.SiteDetailsResponse{}, err
		}

		nested := make([]dto.AssignmentDetails, 0, len(assignments))
		for _, assignment := range assignments {
			submissions, err := s.submissions.ListByAssignment(ctx, assignment.ID)
			if err != nil {
				return dto.SiteDetailsResponse{}, err
			}
			nested = append(nested, dto.AssignmentDetails{
				Assignment:  assignment,
				Submissions: submissions,
			})
		}

		details = append(details, dto.ModuleDetails{Module: module, Assignments: nested})
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return dto.SiteDetailsResponse{}, err
	}

	return dto.SiteDetailsResponse{Modules: details, Users: users}, nil
}
