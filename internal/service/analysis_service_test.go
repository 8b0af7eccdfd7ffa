package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/models"
)

func newAnalysisFixture(t *testing.T, codes *codeRepoFake, generator *generatorFake) AnalysisService {
	t.Helper()
	svc, err := NewAnalysisService(codes, generator, testValidator(), testLogger())
	require.NoError(t, err)
	return svc
}

func TestFileNamingPersistsVerdict(t *testing.T) {
	codes := newCodeRepoFake(models.Code{ID: "code-1", SubmissionID: "sub-1"})
	generator := &generatorFake{response: "```json\n" + `{
		"status": "No",
		"invalid_files": [{"file_name": "MyFile.GO", "path": "src/MyFile.GO", "reason": "extension should be lowercase"}]
	}` + "\n```"}
	svc := newAnalysisFixture(t, codes, generator)

	verdict, err := svc.FileNaming(context.Background(), dto.AnalysisRequest{
		CodeID:  "code-1",
		RepoURL: "https://github.com/octocat/hello-world",
	})
	require.NoError(t, err)
	require.Equal(t, "No", verdict["status"])

	stored, err := codes.Get(context.Background(), "code-1")
	require.NoError(t, err)
	require.Equal(t, "No", stored.FileNamingResults["status"])

	files, ok := stored.FileNamingResults["invalid_files"].([]interface{})
	require.True(t, ok)
	require.Len(t, files, 1)
}

func TestFileNamingRejectsWrongShape(t *testing.T) {
	codes := newCodeRepoFake(models.Code{ID: "code-1"})
	generator := &generatorFake{response: `{"status": "maybe"}`}
	svc := newAnalysisFixture(t, codes, generator)

	_, err := svc.FileNaming(context.Background(), dto.AnalysisRequest{
		CodeID:  "code-1",
		RepoURL: "https://github.com/octocat/hello-world",
	})
	require.True(t, errors.Is(err, ErrAnalysisFailed))

	stored, getErr := codes.Get(context.Background(), "code-1")
	require.NoError(t, getErr)
	require.Empty(t, stored.FileNamingResults)
}

func TestCodeNamingConvertsNumbers(t *testing.T) {
	codes := newCodeRepoFake(models.Code{ID: "code-1"})
	generator := &generatorFake{response: `{
		"status": "No",
		"issues": [{"file_path": "main.go", "line_number": 42, "reason": "single letter name"}]
	}`}
	svc := newAnalysisFixture(t, codes, generator)

	verdict, err := svc.CodeNaming(context.Background(), dto.AnalysisRequest{
		CodeID:  "code-1",
		RepoURL: "https://github.com/octocat/hello-world",
	})
	require.NoError(t, err)

	issues, ok := verdict["issues"].([]interface{})
	require.True(t, ok)
	issue, ok := issues[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(42), issue["line_number"])
}

func TestCommentAccuracyIsStateless(t *testing.T) {
	codes := newCodeRepoFake()
	generator := &generatorFake{response: `{"status": "Pass"}`}
	svc := newAnalysisFixture(t, codes, generator)

	verdict, err := svc.CommentAccuracy(context.Background(), dto.CommentCheckRequest{
		RepoURL: "https://github.com/octocat/hello-world",
	})
	require.NoError(t, err)
	require.Equal(t, "Pass", verdict["status"])
	require.Empty(t, codes.codes)
}

func TestAnalysisResultGetters(t *testing.T) {
	codes := newCodeRepoFake(models.Code{
		ID:                "code-1",
		FileNamingResults: map[string]interface{}{"status": "Yes"},
	})
	svc := newAnalysisFixture(t, codes, &generatorFake{})

	verdict, err := svc.FileNamingResults(context.Background(), "code-1")
	require.NoError(t, err)
	require.Equal(t, "Yes", verdict["status"])

	empty, err := svc.CodeNamingResults(context.Background(), "code-1")
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = svc.FileNamingResults(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrCodeNotFound))
}

func TestAnalysisGeneratorFailure(t *testing.T) {
	codes := newCodeRepoFake(models.Code{ID: "code-1"})
	generator := &generatorFake{err: errors.New("model unavailable")}
	svc := newAnalysisFixture(t, codes, generator)

	_, err := svc.FileNaming(context.Background(), dto.AnalysisRequest{
		CodeID:  "code-1",
		RepoURL: "https://github.com/octocat/hello-world",
	})
	require.True(t, errors.Is(err, ErrAnalysisFailed))
}
