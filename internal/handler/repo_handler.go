package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/saat-labs/saat-api/internal/service"
	"github.com/saat-labs/saat-api/internal/utils"
	"github.com/saat-labs/saat-api/pkg/github"
)

// RepoHandler wires the GitHub proxy HTTP routes. Upstream bodies are
// forwarded verbatim together with the upstream status code.
type RepoHandler struct {
	service service.RepoProxyService
	logger  zerolog.Logger
}

// NewRepoHandler constructs the handler.
func NewRepoHandler(service service.RepoProxyService, logger zerolog.Logger) *RepoHandler {
	return &RepoHandler{
		service: service,
		logger:  logger.With().Str("component", "repo_handler").Logger(),
	}
}

// Register attaches proxy endpoints to the router group.
func (h *RepoHandler) Register(router fiber.Router) {
	router.Get("/details", h.details)
	router.Get("/contents", h.contents)
	// file-content is the same upstream call as contents with a path;
	// kept as its own route for callers that address a single file.
	router.Get("/file-content", h.contents)
	router.Get("/contributors", h.contributors)
	router.Get("/commits", h.commits)
	router.Get("/commit-count", h.commitCount)
	router.Get("/contributor-activity", h.contributorActivity)
}

func (h *RepoHandler) details(c *fiber.Ctx) error {
	repoURL, err := repoURLQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Details(c.Context(), repoURL)
	if err != nil {
		return h.handleError(c, err)
	}

	return h.passthrough(c, resp)
}

func (h *RepoHandler) contents(c *fiber.Ctx) error {
	repoURL, err := repoURLQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Contents(c.Context(), repoURL, strings.TrimSpace(c.Query("path")))
	if err != nil {
		return h.handleError(c, err)
	}

	return h.passthrough(c, resp)
}

func (h *RepoHandler) contributors(c *fiber.Ctx) error {
	repoURL, err := repoURLQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.service.Contributors(c.Context(), repoURL)
	if err != nil {
		return h.handleError(c, err)
	}

	return h.passthrough(c, resp)
}

func (h *RepoHandler) commits(c *fiber.Ctx) error {
	repoURL, err := repoURLQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	author := strings.TrimSpace(c.Query("author"))
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	perPage, err := parseQueryInt(c, "per_page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid per_page")
	}

	pageResult, err := h.service.Commits(c.Context(), repoURL, author, page, perPage)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "commits retrieved", pageResult)
}

func (h *RepoHandler) commitCount(c *fiber.Ctx) error {
	repoURL, err := repoURLQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	author := strings.TrimSpace(c.Query("author"))
	count, err := h.service.CommitCount(c.Context(), repoURL, author)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "commit count retrieved", count)
}

func (h *RepoHandler) contributorActivity(c *fiber.Ctx) error {
	repoURL, err := repoURLQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	activity, err := h.service.ContributorActivity(c.Context(), repoURL)
	if err != nil {
		return h.handleError(c, err)
	}

	if activity.Pending {
		return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, "statistics are being computed, retry shortly", activity)
	}

	return utils.SendSuccess(c, "contributor activity retrieved", activity)
}

// passthrough forwards the upstream status and body untouched.
func (h *RepoHandler) passthrough(c *fiber.Ctx, resp *github.Response) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(resp.StatusCode).Send(resp.Body)
}

func (h *RepoHandler) handleError(c *fiber.Ctx, err error) error {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return utils.SendError(c, apiErr.StatusCode, apiErr.Message)
	}
	if errors.Is(err, github.ErrInvalidRepoURL) {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	requestLogger(h.logger, c).Error().Err(err).Msg("github proxy request failed")
	return utils.SendError(c, fiber.StatusBadGateway, "upstream request failed")
}

func repoURLQuery(c *fiber.Ctx) (string, error) {
	repoURL := strings.TrimSpace(c.Query("repo_url"))
	if repoURL == "" {
		return "", errors.New("repo_url query parameter is required")
	}
	return repoURL, nil
}
