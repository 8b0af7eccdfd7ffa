package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/saat-labs/saat-api/internal/models"
)

func TestProjectOverviewJoinsArtefacts(t *testing.T) {
	codeID := "code-1"
	submissions := newSubmissionRepoFake(models.Submission{
		ID:           "sub-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
		CodeID:       &codeID,
		Marks: datatypes.JSONMap{
			models.ChannelViva: map[string]interface{}{"Understanding": 6.0},
		},
	})
	assignments := &assignmentRepoFake{assignments: map[string]models.Assignment{
		"assignment-1": {ID: "assignment-1", ModuleID: "module-1", Name: "Coursework 1"},
	}}
	modules := &moduleRepoFake{modules: map[string]models.Module{
		"module-1": {ID: "module-1", Name: "Software Engineering"},
	}}
	users := &userRepoFake{users: map[string]models.User{
		"student-1": {UID: "student-1", Email: "student@university.edu"},
	}}
	codes := newCodeRepoFake(models.Code{
		ID:           codeID,
		SubmissionID: "sub-1",
		GithubURL:    "https://github.com/octocat/hello-world",
		Marks:        datatypes.JSONMap{"Correctness": 12.0},
	})
	reports := &reportRepoFake{}
	videoMarks := newVideoMarkRepoFake()
	vivaSets := &vivaQuestionRepoFake{}
	schemes := &markingSchemeRepoFake{schemes: []models.MarkingScheme{{
		ID:           "scheme-1",
		AssignmentID: "assignment-1",
		Title:        "CW1 rubric",
		Status:       models.SchemeStatusActive,
		Criteria:     datatypes.JSON(`{}`),
		SubmissionTypeWeights: datatypes.JSONMap{
			models.ChannelViva: 40.0,
			models.ChannelCode: 60.0,
		},
	}}}
	grading := newGradingFixture(submissions, codes, reports, videoMarks, schemes)
	svc := NewProjectService(submissions, assignments, modules, users, codes, reports, videoMarks, vivaSets, schemes, grading, testLogger())

	overview, err := svc.Overview(context.Background(), "sub-1")
	require.NoError(t, err)
	require.Equal(t, "sub-1", overview.Submission.ID)
	require.NotNil(t, overview.Assignment)
	require.Equal(t, "Coursework 1", overview.Assignment.Name)
	require.NotNil(t, overview.Module)
	require.NotNil(t, overview.Student)
	require.NotNil(t, overview.Code)
	require.Nil(t, overview.Report)
	require.NotNil(t, overview.Scheme)
	require.InDelta(t, 60, overview.Scheme.SubmissionTypeWeights[models.ChannelCode], 1e-9)
	require.InDelta(t, 6, overview.ChannelGrade[models.ChannelViva].Total, 1e-9)
	require.InDelta(t, 12, overview.ChannelGrade[models.ChannelCode].Total, 1e-9)
}

func TestProjectOverviewMissingSubmission(t *testing.T) {
	submissions := newSubmissionRepoFake()
	grading := newGradingFixture(submissions, newCodeRepoFake(), &reportRepoFake{}, newVideoMarkRepoFake(), &markingSchemeRepoFake{})
	svc := NewProjectService(
		submissions,
		&assignmentRepoFake{assignments: map[string]models.Assignment{}},
		&moduleRepoFake{modules: map[string]models.Module{}},
		&userRepoFake{users: map[string]models.User{}},
		newCodeRepoFake(), &reportRepoFake{}, newVideoMarkRepoFake(),
		&vivaQuestionRepoFake{}, &markingSchemeRepoFake{}, grading, testLogger(),
	)

	_, err := svc.Overview(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrSubmissionNotFound))
}

func TestSiteDetailsNestsModulesAssignmentsSubmissions(t *testing.T) {
	submissions := newSubmissionRepoFake(
		models.Submission{ID: "sub-1", AssignmentID: "assignment-1", StudentID: "student-1"},
		models.Submission{ID: "sub-2", AssignmentID: "assignment-1", StudentID: "student-2"},
	)
	assignments := &assignmentRepoFake{assignments: map[string]models.Assignment{
		"assignment-1": {ID: "assignment-1", ModuleID: "module-1", Name: "Coursework 1"},
	}}
	modules := &moduleRepoFake{modules: map[string]models.Module{
		"module-1": {ID: "module-1", Name: "Software Engineering"},
	}}
	users := &userRepoFake{users: map[string]models.User{
		"student-1": {UID: "student-1"},
		"student-2": {UID: "student-2"},
	}}
	grading := newGradingFixture(submissions, newCodeRepoFake(), &reportRepoFake{}, newVideoMarkRepoFake(), &markingSchemeRepoFake{})
	svc := NewProjectService(submissions, assignments, modules, users, newCodeRepoFake(), &reportRepoFake{}, newVideoMarkRepoFake(), &vivaQuestionRepoFake{}, &markingSchemeRepoFake{}, grading, testLogger())

	details, err := svc.SiteDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details.Modules, 1)
	require.Len(t, details.Modules[0].Assignments, 1)
	require.Len(t, details.Modules[0].Assignments[0].Submissions, 2)
	require.Len(t, details.Users, 2)
}
