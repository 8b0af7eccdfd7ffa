package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL, Token: "test-token", Logger: zerolog.Nop()})
}

func TestParseRepoURL(t *testing.T) {
	owner, repo, err := ParseRepoURL("https://github.com/octocat/hello-world")
	require.NoError(t, err)
	require.Equal(t, "octocat", owner)
	require.Equal(t, "hello-world", repo)

	owner, repo, err = ParseRepoURL("https://github.com/octocat/hello-world.git/")
	require.NoError(t, err)
	require.Equal(t, "octocat", owner)
	require.Equal(t, "hello-world", repo)

	_, _, err = ParseRepoURL("not-a-url")
	require.Error(t, err)
}

func TestRepoDetailsPassesStatusThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octocat/hello-world", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	resp, err := client.RepoDetails(context.Background(), "octocat", "hello-world")
	require.NoError(t, err)
	require.False(t, resp.OK())
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.JSONEq(t, `{"message":"Not Found"}`, string(resp.Body))
}

func TestCommitsParsesLinkHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "alice", r.URL.Query().Get("author"))
		require.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Link", `<https://api.github.com/repos/o/r/commits?page=3>; rel="next", <https://api.github.com/repos/o/r/commits?page=1>; rel="prev", <https://api.github.com/repos/o/r/commits?page=9>; rel="last"`)
		w.Write([]byte(`[{"sha":"abc"}]`))
	})

	resp, err := client.Commits(context.Background(), "o", "r", "alice", 2, 10)
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Contains(t, resp.Links.Next, "page=3")
	require.Contains(t, resp.Links.Prev, "page=1")
	require.Contains(t, resp.Links.Last, "page=9")
}

func TestCountCommitsUsesLastPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("per_page"))
		w.Header().Set("Link", `<https://api.github.com/repos/o/r/commits?author=alice&page=42&per_page=1>; rel="last"`)
		w.Write([]byte(`[{"sha":"abc"}]`))
	})

	total, err := client.CountCommits(context.Background(), "o", "r", "alice")
	require.NoError(t, err)
	require.Equal(t, 42, total)
}

func TestCountCommitsSinglePage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"sha":"abc"}]`))
	})

	total, err := client.CountCommits(context.Background(), "o", "r", "alice")
	require.NoError(t, err)
	require.Equal(t, 1, total)
}
