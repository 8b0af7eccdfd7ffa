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

// AnalysisHandler wires AI convention analysis HTTP routes.
type AnalysisHandler struct {
	service service.AnalysisService
	logger  zerolog.Logger
}

// NewAnalysisHandler constructs the handler.
func NewAnalysisHandler(service service.AnalysisService, logger zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  logger.With().Str("component", "analysis_handler").Logger(),
	}
}

// Register attaches analysis endpoints to the router group.
func (h *AnalysisHandler) Register(router fiber.Router) {
	router.Post("/file-check", h.fileNaming)
	router.Post("/code-check", h.codeNaming)
	router.Post("/comment-check", h.commentAccuracy)
	router.Get("/file-results/:codeId", h.fileNamingResults)
	router.Get("/code-results/:codeId", h.codeNamingResults)
}

func (h *AnalysisHandler) fileNaming(c *fiber.Ctx) error {
	var payload dto.AnalysisRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	verdict, err := h.service.FileNaming(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "file naming analysis completed", verdict)
}

func (h *AnalysisHandler) codeNaming(c *fiber.Ctx) error {
	var payload dto.AnalysisRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	verdict, err := h.service.CodeNaming(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "code naming analysis completed", verdict)
}

func (h *AnalysisHandler) commentAccuracy(c *fiber.Ctx) error {
	var payload dto.CommentCheckRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	verdict, err := h.service.CommentAccuracy(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "comment accuracy analysis completed", verdict)
}

func (h *AnalysisHandler) fileNamingResults(c *fiber.Ctx) error {
	codeID, err := requiredParam(c, "codeId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	verdict, err := h.service.FileNamingResults(c.Context(), codeID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "file naming results retrieved", verdict)
}

func (h *AnalysisHandler) codeNamingResults(c *fiber.Ctx) error {
	codeID, err := requiredParam(c, "codeId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	verdict, err := h.service.CodeNamingResults(c.Context(), codeID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "code naming results retrieved", verdict)
}

func (h *AnalysisHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCodeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "code submission not found")
	case errors.Is(err, service.ErrAnalysisFailed):
		requestLogger(h.logger, c).Warn().Err(err).Msg("analysis did not produce a usable verdict")
		return utils.SendError(c, fiber.StatusBadGateway, "analysis failed")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
