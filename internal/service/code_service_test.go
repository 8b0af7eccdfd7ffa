package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
)

func TestCodeCreateDefaultsEmptyComments(t *testing.T) {
	repo := newCodeRepoFake()
	svc := NewCodeService(repo, testValidator(), testLogger())

	code, err := svc.Create(context.Background(), dto.RepoSubmissionRequest{
		SubmissionID: "sub-1",
		GithubURL:    "https://github.com/octocat/hello-world",
	})
	require.NoError(t, err)
	require.JSONEq(t, "{}", string(code.Comments))
}

func TestCodeCreateRejectsInvalidComments(t *testing.T) {
	svc := NewCodeService(newCodeRepoFake(), testValidator(), testLogger())

	_, err := svc.Create(context.Background(), dto.RepoSubmissionRequest{
		SubmissionID: "sub-1",
		GithubURL:    "https://github.com/octocat/hello-world",
		Comments:     json.RawMessage(`{"broken`),
	})
	require.Error(t, err)
}

func TestSaveLineCommentAccumulatesAndSanitizes(t *testing.T) {
	repo := newCodeRepoFake(models.Code{ID: "code-1", SubmissionID: "sub-1"})
	svc := NewCodeService(repo, testValidator(), testLogger())

	_, err := svc.SaveLineComment(context.Background(), dto.LineCommentRequest{
		CodeID:      "code-1",
		FileName:    "main.go",
		LineNumber:  12,
		CommentText: "rename this variable",
	})
	require.NoError(t, err)

	updated, err := svc.SaveLineComment(context.Background(), dto.LineCommentRequest{
		CodeID:      "code-1",
		FileName:    "main.go",
		LineNumber:  12,
		CommentText: `<script>alert("x")</script>missing error check`,
	})
	require.NoError(t, err)

	var comments map[string]map[string][]string
	require.NoError(t, json.Unmarshal(updated.Comments, &comments))
	require.Len(t, comments["main.go"]["12"], 2)
	require.Equal(t, "rename this variable", comments["main.go"]["12"][0])
	require.NotContains(t, comments["main.go"]["12"][1], "<script>")
	require.Contains(t, comments["main.go"]["12"][1], "missing error check")
}

func TestSaveFinalFeedbackStripsMarkup(t *testing.T) {
	repo := newCodeRepoFake(models.Code{ID: "code-1", SubmissionID: "sub-1"})
	svc := NewCodeService(repo, testValidator(), testLogger())

	code, err := svc.SaveFinalFeedback(context.Background(), dto.FinalFeedbackRequest{
		CodeID:        "code-1",
		FinalFeedback: "<b>good</b> structure overall",
	})
	require.NoError(t, err)
	require.Equal(t, "good structure overall", code.FinalFeedback)
}

func TestGithubURLLookups(t *testing.T) {
	repo := newCodeRepoFake(models.Code{
		ID:           "code-1",
		SubmissionID: "sub-1",
		GithubURL:    "https://github.com/octocat/hello-world",
	})
	svc := NewCodeService(repo, testValidator(), testLogger())

	url, err := svc.GithubURL(context.Background(), "code-1")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/octocat/hello-world", url)

	url, err = svc.GithubURLBySubmission(context.Background(), "sub-1")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/octocat/hello-world", url)

	_, err = svc.GithubURL(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrCodeNotFound))
}
