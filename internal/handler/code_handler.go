package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/saat-labs/saat-api/internal/dto"
	"github.com/saat-labs/saat-api/internal/service"
	"github.com/saat-labs/saat-api/internal/utils"
)

// CodeHandler wires code submission HTTP routes.
type CodeHandler struct {
	service service.CodeService
	logger  zerolog.Logger
}

// NewCodeHandler constructs the handler.
func NewCodeHandler(service service.CodeService, logger zerolog.Logger) *CodeHandler {
	return &CodeHandler{
		service: service,
		logger:  logger.With().Str("component", "code_handler").Logger(),
	}
}

// Register attaches code submission endpoints to the router group.
func (h *CodeHandler) Register(router fiber.Router) {
	router.Post("/create", h.create)
	router.Post("/line-comment", h.lineComment)
	router.Post("/final-feedback", h.finalFeedback)
	router.Get("/get/:id", h.get)
	router.Get("/github-url/:id", h.githubURL)
	router.Get("/github-url/by-submission/:submissionId", h.githubURLBySubmission)
}

func (h *CodeHandler) create(c *fiber.Ctx) error {
	var payload dto.RepoSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	code, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "repository submission created", code)
}

func (h *CodeHandler) lineComment(c *fiber.Ctx) error {
	var payload dto.LineCommentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	code, err := h.service.SaveLineComment(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "line comment saved", code)
}

func (h *CodeHandler) finalFeedback(c *fiber.Ctx) error {
	var payload dto.FinalFeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	code, err := h.service.SaveFinalFeedback(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "final feedback saved", code)
}

func (h *CodeHandler) get(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	code, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "code submission retrieved", code)
}

func (h *CodeHandler) githubURL(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	url, err := h.service.GithubURL(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "github url retrieved", fiber.Map{"github_url": url})
}

func (h *CodeHandler) githubURLBySubmission(c *fiber.Ctx) error {
	submissionID, err := requiredParam(c, "submissionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	url, err := h.service.GithubURLBySubmission(c.Context(), submissionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "github url retrieved", fiber.Map{"github_url": url})
}

func (h *CodeHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCodeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "code submission not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *CodeHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
