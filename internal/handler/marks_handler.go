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

// MarksHandler wires grading HTTP routes.
type MarksHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewMarksHandler constructs the handler.
func NewMarksHandler(service service.GradingService, logger zerolog.Logger) *MarksHandler {
	return &MarksHandler{
		service: service,
		logger:  logger.With().Str("component", "marks_handler").Logger(),
	}
}

// Register attaches grading endpoints to the router group.
func (h *MarksHandler) Register(router fiber.Router) {
	router.Post("/save", h.save)
	router.Get("/totals/:submissionId", h.totals)
	router.Get("/final-grade/:submissionId", h.finalGrade)
	router.Post("/video/save", h.saveVideoMarks)
	router.Get("/video/:submissionId", h.videoMarks)
}

func (h *MarksHandler) save(c *fiber.Ctx) error {
	var payload dto.SaveMarksRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.SaveMarks(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "marks saved", submission)
}

func (h *MarksHandler) totals(c *fiber.Ctx) error {
	submissionID, err := requiredParam(c, "submissionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	totals, err := h.service.ChannelTotals(c.Context(), submissionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "channel totals retrieved", totals)
}

func (h *MarksHandler) finalGrade(c *fiber.Ctx) error {
	submissionID, err := requiredParam(c, "submissionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	grade, err := h.service.FinalGrade(c.Context(), submissionID)
	if err != nil {
		if errors.Is(err, service.ErrMarkingSchemeNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "marking scheme not found")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "final grade computed", grade)
}

func (h *MarksHandler) saveVideoMarks(c *fiber.Ctx) error {
	var payload dto.SaveVideoMarksRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	mark, err := h.service.SaveVideoMarks(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "video marks saved", mark)
}

func (h *MarksHandler) videoMarks(c *fiber.Ctx) error {
	submissionID, err := requiredParam(c, "submissionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	mark, err := h.service.VideoMarks(c.Context(), submissionID)
	if err != nil {
		if errors.Is(err, service.ErrVideoMarksNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "video marks not found")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "video marks retrieved", mark)
}

func (h *MarksHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *MarksHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
