package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
)

type markingSchemeRepoFake struct {
	schemes []models.MarkingScheme
}

func (r *markingSchemeRepoFake) Get(ctx context.Context, id string) (models.MarkingScheme, error) {
	for _, scheme := range r.schemes {
		if scheme.ID == id {
			return scheme, nil
		}
	}
	return models.MarkingScheme{}, gorm.ErrRecordNotFound
}

func (r *markingSchemeRepoFake) List(ctx context.Context) ([]models.MarkingScheme, error) {
	return r.schemes, nil
}

func (r *markingSchemeRepoFake) ActiveByAssignment(ctx context.Context, assignmentID string) (models.MarkingScheme, error) {
	for i := len(r.schemes) - 1; i >= 0; i-- {
		if r.schemes[i].AssignmentID == assignmentID && r.schemes[i].Status == models.SchemeStatusActive {
			return r.schemes[i], nil
		}
	}
	return models.MarkingScheme{}, gorm.ErrRecordNotFound
}

func (r *markingSchemeRepoFake) CreateArchivingPrevious(ctx context.Context, scheme *models.MarkingScheme) error {
	for i := range r.schemes {
		if r.schemes[i].AssignmentID == scheme.AssignmentID && r.schemes[i].Status == models.SchemeStatusActive {
			r.schemes[i].Status = models.SchemeStatusArchived
		}
	}
	r.schemes = append(r.schemes, *scheme)
	return nil
}

func schemeCreatePayload() dto.MarkingSchemeCreateRequest {
	return dto.MarkingSchemeCreateRequest{
		RubricName:   "CW1 rubric",
		ModuleCode:   "CS3010",
		AssignmentID: "assignment-1",
		Criteria: map[string][]dto.CriterionPayload{
			models.ChannelViva: {{Name: "Understanding", Weight: 10}},
			models.ChannelCode: {{Name: "Correctness", Weight: 20}},
		},
		SubmissionTypes: map[string]bool{
			models.ChannelViva:   true,
			models.ChannelCode:   true,
			models.ChannelVideo:  false,
			models.ChannelReport: false,
		},
		SubmissionTypeWeights: map[string]float64{
			models.ChannelViva: 40,
			models.ChannelCode: 60,
		},
	}
}

func TestMarkingSchemeCreateRejectsBadWeightSum(t *testing.T) {
	repo := &markingSchemeRepoFake{}
	svc := NewMarkingSchemeService(repo, testValidator(), testLogger())

	payload := schemeCreatePayload()
	payload.SubmissionTypeWeights[models.ChannelCode] = 55

	_, err := svc.Create(context.Background(), payload)
	var weightErr *WeightSumError
	require.ErrorAs(t, err, &weightErr)
	require.InDelta(t, 95, weightErr.Total, 1e-9)
	require.Empty(t, repo.schemes)
}

func TestMarkingSchemeCreateIgnoresDisabledChannelWeights(t *testing.T) {
	repo := &markingSchemeRepoFake{}
	svc := NewMarkingSchemeService(repo, testValidator(), testLogger())

	// the disabled video channel carries a stale weight that must not count
	payload := schemeCreatePayload()
	payload.SubmissionTypeWeights[models.ChannelVideo] = 30

	scheme, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, models.SchemeStatusActive, scheme.Status)

	// the stale weight must not survive into the stored scheme either
	require.NotContains(t, scheme.SubmissionTypeWeights, models.ChannelVideo)
	require.InDelta(t, 40, scheme.ChannelWeight(models.ChannelViva), 1e-9)
	require.InDelta(t, 60, scheme.ChannelWeight(models.ChannelCode), 1e-9)
	require.False(t, scheme.ChannelEnabled(models.ChannelVideo))
	require.True(t, scheme.ChannelEnabled(models.ChannelViva))
}

func TestMarkingSchemeCreateDropsDisabledChannelCriteria(t *testing.T) {
	repo := &markingSchemeRepoFake{}
	svc := NewMarkingSchemeService(repo, testValidator(), testLogger())

	payload := schemeCreatePayload()
	payload.Criteria[models.ChannelVideo] = []dto.CriterionPayload{{Name: "Presentation", Weight: 5}}

	scheme, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)

	var criteria map[string][]models.Criterion
	require.NoError(t, json.Unmarshal(scheme.Criteria, &criteria))
	require.Contains(t, criteria, models.ChannelViva)
	require.Contains(t, criteria, models.ChannelCode)
	require.NotContains(t, criteria, models.ChannelVideo)
	require.Equal(t, "Understanding", criteria[models.ChannelViva][0].Criterion)
}

func TestMarkingSchemeCreateArchivesPrevious(t *testing.T) {
	repo := &markingSchemeRepoFake{}
	svc := NewMarkingSchemeService(repo, testValidator(), testLogger())

	first, err := svc.Create(context.Background(), schemeCreatePayload())
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), schemeCreatePayload())
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	archived, err := repo.Get(context.Background(), first.ID)
	require.NoError(t, err)
	require.Equal(t, models.SchemeStatusArchived, archived.Status)

	active, err := svc.GetByAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)
}

func TestMarkingSchemeGetByAssignmentNotFound(t *testing.T) {
	svc := NewMarkingSchemeService(&markingSchemeRepoFake{}, testValidator(), testLogger())

	_, err := svc.GetByAssignment(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrMarkingSchemeNotFound))
}

func TestMarkingSchemeWeights(t *testing.T) {
	repo := &markingSchemeRepoFake{}
	svc := NewMarkingSchemeService(repo, testValidator(), testLogger())

	_, err := svc.Create(context.Background(), schemeCreatePayload())
	require.NoError(t, err)

	weights, err := svc.Weights(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.Equal(t, "assignment-1", weights.AssignmentID)
	require.InDelta(t, 40, weights.SubmissionTypeWeights[models.ChannelViva], 1e-9)
	require.InDelta(t, 60, weights.SubmissionTypeWeights[models.ChannelCode], 1e-9)
}
