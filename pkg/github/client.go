package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL points at the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// ErrInvalidRepoURL rejects repository URLs that cannot be split into an
// owner and repository name.
var ErrInvalidRepoURL = errors.New("invalid github repository url")

// APIError carries a non-OK upstream status so handlers can pass it through.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: %d %s", e.StatusCode, e.Message)
}

// Config holds client construction options.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client is a thin wrapper over the GitHub REST API. Responses are kept as
// raw JSON so the HTTP layer can return upstream bodies verbatim.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New constructs a GitHub client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger.With().Str("component", "github_client").Logger(),
	}
}

// ParseRepoURL splits a repository URL into owner and repo name. Trailing
// slashes and a .git suffix are tolerated.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimRight(strings.TrimSpace(raw), "/"), "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoURL, raw)
	}

	owner = parts[len(parts)-2]
	repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoURL, raw)
	}

	return owner, repo, nil
}

// PageLinks holds the pagination URLs parsed from a Link response header.
type PageLinks struct {
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
	Last string `json:"last,omitempty"`
}

// Response is a raw upstream reply: the status code, the body verbatim and
// any pagination links GitHub advertised.
type Response struct {
	StatusCode int
	Body       json.RawMessage
	Links      PageLinks
}

// OK reports whether the upstream call succeeded.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// RepoDetails fetches repository metadata.
func (c *Client) RepoDetails(ctx context.Context, owner, repo string) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), nil)
}

// Contents fetches the file listing (or file entry) at path.
func (c *Client) Contents(ctx context.Context, owner, repo, path string) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path), nil)
}

// Contributors lists repository contributors.
func (c *Client) Contributors(ctx context.Context, owner, repo string) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/contributors", owner, repo), nil)
}

// Commits fetches one page of commits authored by the given login.
func (c *Client) Commits(ctx context.Context, owner, repo, author string, page, perPage int) (*Response, error) {
	query := url.Values{}
	query.Set("author", author)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", owner, repo), query)
}

// ContributorStats fetches the weekly contributor statistics. GitHub answers
// 202 while it is still computing them; that status is passed through.
func (c *Client) ContributorStats(ctx context.Context, owner, repo string) (*Response, error) {
	return c.get(ctx, fmt.Sprintf("/repos/%s/%s/stats/contributors", owner, repo), nil)
}

// CountCommits approximates the total number of commits for an author by
// requesting a single-commit page and reading the rel="last" page number.
func (c *Client) CountCommits(ctx context.Context, owner, repo, author string) (int, error) {
	query := url.Values{}
	query.Set("author", author)
	query.Set("per_page", "1")

	resp, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", owner, repo), query)
	if err != nil {
		return 0, err
	}
	if !resp.OK() {
		return 0, &APIError{StatusCode: resp.StatusCode, Message: "commit count failed"}
	}

	if resp.Links.Last == "" {
		var commits []json.RawMessage
		if err := json.Unmarshal(resp.Body, &commits); err != nil {
			return 0, fmt.Errorf("decode commits: %w", err)
		}
		return len(commits), nil
	}

	last, err := pageNumber(resp.Links.Last)
	if err != nil {
		return 0, err
	}

	return last, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read github response: %w", err)
	}

	c.logger.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("github request completed")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Links:      parseLinkHeader(resp.Header.Get("Link")),
	}, nil
}

// parseLinkHeader extracts rel="next", rel="prev" and rel="last" URLs from a
// GitHub Link header.
func parseLinkHeader(header string) PageLinks {
	links := PageLinks{}
	for _, part := range strings.Split(header, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}

		target := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		for _, attr := range sections[1:] {
			attr = strings.TrimSpace(attr)
			switch attr {
			case `rel="next"`:
				links.Next = target
			case `rel="prev"`:
				links.Prev = target
			case `rel="last"`:
				links.Last = target
			}
		}
	}
	return links
}

func pageNumber(link string) (int, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return 0, fmt.Errorf("parse pagination link: %w", err)
	}

	page := parsed.Query().Get("page")
	if page == "" {
		return 0, fmt.Errorf("pagination link %q carries no page parameter", link)
	}

	return strconv.Atoi(page)
}
