package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/pkg/github"
)

// RepoProxyService fronts the GitHub REST API for linked repositories.
// Bodies are passed through verbatim; only pagination and the contributor
// activity aggregation add shape on top.
type RepoProxyService interface {
	Details(ctx context.Context, repoURL string) (*github.Response, error)
	Contents(ctx context.Context, repoURL, path string) (*github.Response, error)
	Contributors(ctx context.Context, repoURL string) (*github.Response, error)
	Commits(ctx context.Context, repoURL, author string, page, perPage int) (dto.CommitPage, error)
	CommitCount(ctx context.Context, repoURL, author string) (dto.CommitCountResponse, error)
	ContributorActivity(ctx context.Context, repoURL string) (dto.ContributorActivityResponse, error)
}

type repoProxyService struct {
	client   *github.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewRepoProxyService constructs a RepoProxyService. The cache is optional;
// when present, repository details are cached to keep instructor review
// pages from hammering the upstream rate limit.
func NewRepoProxyService(client *github.Client, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) RepoProxyService {
	return &repoProxyService{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "repo_proxy_service").Logger(),
	}
}

type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

func (s *repoProxyService) Details(ctx context.Context, repoURL string) (*github.Response, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("repo:details:%s/%s", owner, repo)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var stored cachedResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &stored); unmarshalErr == nil {
				s.logger.Debug().Str("repo", owner+"/"+repo).Msg("repo details cache hit")
				return &github.Response{StatusCode: stored.StatusCode, Body: stored.Body}, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read repo details cache")
		}
	}

	resp, err := s.client.RepoDetails(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	// Only successful replies are cached; error statuses stay live.
	if s.cache != nil && resp.OK() {
		payload, err := json.Marshal(cachedResponse{StatusCode: resp.StatusCode, Body: resp.Body})
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store repo details cache")
			}
		}
	}

	return resp, nil
}

func (s *repoProxyService) Contents(ctx context.Context, repoURL, path string) (*github.Response, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	return s.client.Contents(ctx, owner, repo, path)
}

func (s *repoProxyService) Contributors(ctx context.Context, repoURL string) (*github.Response, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	return s.client.Contributors(ctx, owner, repo)
}

func (s *repoProxyService) Commits(ctx context.Context, repoURL, author string, page, perPage int) (dto.CommitPage, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return dto.CommitPage{}, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 30
	}

	resp, err := s.client.Commits(ctx, owner, repo, author, page, perPage)
	if err != nil {
		return dto.CommitPage{}, err
	}
	if !resp.OK() {
		return dto.CommitPage{}, &github.APIError{StatusCode: resp.StatusCode, Message: "commit listing failed"}
	}

	return dto.CommitPage{
		Commits: resp.Body,
		Pagination: dto.CommitPageInfo{
			Page:    page,
			PerPage: perPage,
			HasNext: resp.Links.Next != "",
			HasPrev: resp.Links.Prev != "",
		},
	}, nil
}

func (s *repoProxyService) CommitCount(ctx context.Context, repoURL, author string) (dto.CommitCountResponse, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return dto.CommitCountResponse{}, err
	}

	count, err := s.client.CountCommits(ctx, owner, repo, author)
	if err != nil {
		return dto.CommitCountResponse{}, err
	}

	return dto.CommitCountResponse{Author: author, Count: count}, nil
}

// contributorStats mirrors the fields used from GitHub's statistics reply.
type contributorStats struct {
	Total  int `json:"total"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
	Weeks []struct {
		Week      int64 `json:"w"`
		Additions int   `json:"a"`
		Deletions int   `json:"d"`
		Commits   int   `json:"c"`
	} `json:"weeks"`
}

// ContributorActivity reshapes GitHub's weekly contributor statistics.
// Weeks with no activity are dropped from the aggregation. A 202 from
// upstream means the stats are still being computed and yields a pending
// response rather than an error.
func (s *repoProxyService) ContributorActivity(ctx context.Context, repoURL string) (dto.ContributorActivityResponse, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return dto.ContributorActivityResponse{}, err
	}

	resp, err := s.client.ContributorStats(ctx, owner, repo)
	if err != nil {
		return dto.ContributorActivityResponse{}, err
	}
	if resp.StatusCode == http.StatusAccepted {
		return dto.ContributorActivityResponse{Pending: true}, nil
	}
	if !resp.OK() {
		return dto.ContributorActivityResponse{}, &github.APIError{StatusCode: resp.StatusCode, Message: "contributor stats failed"}
	}

	var stats []contributorStats
	if err := json.Unmarshal(resp.Body, &stats); err != nil {
		return dto.ContributorActivityResponse{}, fmt.Errorf("decode contributor stats: %w", err)
	}

	contributors := make([]dto.ContributorActivity, 0, len(stats))
	for _, stat := range stats {
		activity := dto.ContributorActivity{
			Login:        stat.Author.Login,
			TotalCommits: stat.Total,
		}
		for _, week := range stat.Weeks {
			if week.Commits == 0 && week.Additions == 0 && week.Deletions == 0 {
				continue
			}
			activity.Weeks = append(activity.Weeks, dto.WeeklyActivity{
				Week:      week.Week,
				Additions: week.Additions,
				Deletions: week.Deletions,
				Commits:   week.Commits,
			})
		}
		contributors = append(contributors, activity)
	}

	return dto.ContributorActivityResponse{Contributors: contributors}, nil
}
