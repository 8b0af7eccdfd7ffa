package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
)

type assignmentRepoFake struct {
	assignments map[string]models.Assignment
}

func (r *assignmentRepoFake) Get(ctx context.Context, id string) (models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (r *assignmentRepoFake) ListByModule(ctx context.Context, moduleID string) ([]models.Assignment, error) {
	matched := []models.Assignment{}
	for _, assignment := range r.assignments {
		if assignment.ModuleID == moduleID {
			matched = append(matched, assignment)
		}
	}
	return matched, nil
}

func (r *assignmentRepoFake) Create(ctx context.Context, assignment *models.Assignment) error {
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *assignmentRepoFake) Update(ctx context.Context, assignment *models.Assignment) error {
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *assignmentRepoFake) Delete(ctx context.Context, id string) error {
	delete(r.assignments, id)
	return nil
}

type moduleRepoFake struct {
	modules map[string]models.Module
}

func (r *moduleRepoFake) Get(ctx context.Context, id string) (models.Module, error) {
	module, ok := r.modules[id]
	if !ok {
		return models.Module{}, gorm.ErrRecordNotFound
	}
	return module, nil
}

func (r *moduleRepoFake) List(ctx context.Context) ([]models.Module, error) {
	modules := []models.Module{}
	for _, module := range r.modules {
		modules = append(modules, module)
	}
	return modules, nil
}

func (r *moduleRepoFake) Create(ctx context.Context, module *models.Module) error {
	r.modules[module.ID] = *module
	return nil
}

type userRepoFake struct {
	users map[string]models.User
}

func (r *userRepoFake) Get(ctx context.Context, uid string) (models.User, error) {
	user, ok := r.users[uid]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *userRepoFake) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepoFake) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	for _, user := range r.users {
		if user.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepoFake) Save(ctx context.Context, user *models.User) error {
	r.users[user.UID] = *user
	return nil
}

func (r *userRepoFake) Delete(ctx context.Context, uid string) error {
	delete(r.users, uid)
	return nil
}

func newSubmissionFixture(
	submissions *submissionRepoFake,
	assignments *assignmentRepoFake,
	modules *moduleRepoFake,
	users *userRepoFake,
) SubmissionService {
	if assignments == nil {
		assignments = &assignmentRepoFake{assignments: map[string]models.Assignment{}}
	}
	if modules == nil {
		modules = &moduleRepoFake{modules: map[string]models.Module{}}
	}
	if users == nil {
		users = &userRepoFake{users: map[string]models.User{}}
	}
	return NewSubmissionService(submissions, assignments, modules, users, testValidator(), testLogger())
}

func TestSubmissionCreateRejectsDuplicate(t *testing.T) {
	submissions := newSubmissionRepoFake()
	svc := newSubmissionFixture(submissions, nil, nil, nil)

	payload := dto.SubmissionCreateRequest{AssignmentID: "assignment-1", StudentID: "student-1"}
	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusPending, created.Status)
	require.NotNil(t, created.Marks)

	_, err = svc.Create(context.Background(), payload)
	require.True(t, errors.Is(err, ErrSubmissionExists))
}

func TestSubmissionCheck(t *testing.T) {
	submissions := newSubmissionRepoFake(models.Submission{
		ID:           "sub-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
	})
	svc := newSubmissionFixture(submissions, nil, nil, nil)

	found, err := svc.Check(context.Background(), dto.CheckSubmissionRequest{
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
	})
	require.NoError(t, err)
	require.True(t, found.Exists)
	require.Equal(t, "sub-1", found.SubmissionID)

	missing, err := svc.Check(context.Background(), dto.CheckSubmissionRequest{
		AssignmentID: "assignment-1",
		StudentID:    "student-2",
	})
	require.NoError(t, err)
	require.False(t, missing.Exists)
	require.Empty(t, missing.SubmissionID)
}

func TestSubmissionAttachCode(t *testing.T) {
	submissions := newSubmissionRepoFake(models.Submission{ID: "sub-1"})
	svc := newSubmissionFixture(submissions, nil, nil, nil)

	err := svc.AttachCode(context.Background(), dto.AttachCodeRequest{
		SubmissionID: "sub-1",
		CodeID:       "code-1",
	})
	require.NoError(t, err)

	stored, err := submissions.Get(context.Background(), "sub-1")
	require.NoError(t, err)
	require.NotNil(t, stored.CodeID)
	require.Equal(t, "code-1", *stored.CodeID)
}

func TestSubmissionAttachToMissingSubmission(t *testing.T) {
	svc := newSubmissionFixture(newSubmissionRepoFake(), nil, nil, nil)

	err := svc.AttachVideo(context.Background(), dto.AttachVideoRequest{
		SubmissionID: "missing",
		VideoID:      "video-1",
	})
	require.True(t, errors.Is(err, ErrSubmissionNotFound))
}

func TestSubmissionUpdateFieldsPartial(t *testing.T) {
	submissions := newSubmissionRepoFake(models.Submission{ID: "sub-1", Status: models.SubmissionStatusPending})
	svc := newSubmissionFixture(submissions, nil, nil, nil)

	status := "Marked"
	reportID := "report-1"
	err := svc.UpdateFields(context.Background(), dto.SubmissionFieldsUpdateRequest{
		SubmissionID: "sub-1",
		ReportID:     &reportID,
		Status:       &status,
	})
	require.NoError(t, err)

	stored, err := submissions.Get(context.Background(), "sub-1")
	require.NoError(t, err)
	require.Equal(t, "Marked", stored.Status)
	require.Equal(t, "report-1", *stored.ReportID)
	require.Nil(t, stored.CodeID)

	// a payload with nothing to change is accepted
	err = svc.UpdateFields(context.Background(), dto.SubmissionFieldsUpdateRequest{SubmissionID: "sub-1"})
	require.NoError(t, err)
}

func TestSubmissionDataJoinsRelations(t *testing.T) {
	submitted := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	submissions := newSubmissionRepoFake(models.Submission{
		ID:           "sub-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
		CreatedAt:    submitted,
	})
	assignments := &assignmentRepoFake{assignments: map[string]models.Assignment{
		"assignment-1": {ID: "assignment-1", ModuleID: "module-1", Name: "Coursework 1"},
	}}
	modules := &moduleRepoFake{modules: map[string]models.Module{
		"module-1": {ID: "module-1", Name: "Software Engineering", Semester: 2, Year: 2026},
	}}
	users := &userRepoFake{users: map[string]models.User{
		"student-1": {UID: "student-1", Email: "student@university.edu"},
	}}
	svc := newSubmissionFixture(submissions, assignments, modules, users)

	data, err := svc.SubmissionData(context.Background(), "sub-1")
	require.NoError(t, err)
	require.Equal(t, "sub-1", data.SubmissionID)
	require.Equal(t, "Coursework 1", data.AssignmentName)
	require.Equal(t, "Software Engineering", data.ModuleName)
	require.Equal(t, "student@university.edu", data.StudentEmail)
	require.Equal(t, submitted, data.SubmittedDate)
}

func TestSubmissionDataRequiresEveryLink(t *testing.T) {
	submissions := newSubmissionRepoFake(models.Submission{
		ID:           "sub-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
	})
	assignments := &assignmentRepoFake{assignments: map[string]models.Assignment{
		"assignment-1": {ID: "assignment-1", ModuleID: "module-1", Name: "Coursework 1"},
	}}
	modules := &moduleRepoFake{modules: map[string]models.Module{
		"module-1": {ID: "module-1", Name: "Software Engineering"},
	}}

	svc := newSubmissionFixture(submissions, nil, nil, nil)
	_, err := svc.SubmissionData(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrSubmissionNotFound))

	// assignment row gone
	_, err = svc.SubmissionData(context.Background(), "sub-1")
	require.True(t, errors.Is(err, ErrAssignmentNotFound))

	// module row gone
	svc = newSubmissionFixture(submissions, assignments, nil, nil)
	_, err = svc.SubmissionData(context.Background(), "sub-1")
	require.True(t, errors.Is(err, ErrModuleNotFound))

	// student account gone
	svc = newSubmissionFixture(submissions, assignments, modules, nil)
	_, err = svc.SubmissionData(context.Background(), "sub-1")
	require.True(t, errors.Is(err, ErrUserNotFound))
}

func TestVivaDashboardJoinsRelations(t *testing.T) {
	submitted := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	submissions := newSubmissionRepoFake(models.Submission{
		ID:           "sub-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
		CreatedAt:    submitted,
	})
	assignments := &assignmentRepoFake{assignments: map[string]models.Assignment{
		"assignment-1": {ID: "assignment-1", ModuleID: "module-1", Name: "Coursework 1"},
	}}
	modules := &moduleRepoFake{modules: map[string]models.Module{
		"module-1": {ID: "module-1", Name: "Software Engineering", Semester: 2, Year: 2026},
	}}
	users := &userRepoFake{users: map[string]models.User{
		"student-1": {UID: "student-1", Email: "student@university.edu"},
	}}
	svc := newSubmissionFixture(submissions, assignments, modules, users)

	rows, err := svc.VivaDashboard(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Coursework 1", rows[0].AssignmentName)
	require.Equal(t, "Software Engineering", rows[0].ModuleName)
	require.Equal(t, "student@university.edu", rows[0].StudentEmail)
	require.Equal(t, submitted, rows[0].SubmittedDate)
}

func TestVivaDashboardUnknownAssignment(t *testing.T) {
	svc := newSubmissionFixture(newSubmissionRepoFake(), nil, nil, nil)

	_, err := svc.VivaDashboard(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrAssignmentNotFound))
}
