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

// QuestionHandler wires viva question HTTP routes.
type QuestionHandler struct {
	service service.QuestionService
	logger  zerolog.Logger
}

// NewQuestionHandler constructs the handler.
func NewQuestionHandler(service service.QuestionService, logger zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		service: service,
		logger:  logger.With().Str("component", "question_handler").Logger(),
	}
}

// Register attaches persisted question set endpoints to the router group.
func (h *QuestionHandler) Register(router fiber.Router) {
	router.Post("/save", h.save)
	router.Get("/get/:documentId", h.get)
	router.Get("/by-submission/:submissionId", h.listBySubmission)
}

// RegisterGenerate attaches the generation endpoint to its own group.
func (h *QuestionHandler) RegisterGenerate(router fiber.Router) {
	router.Post("/generate", h.generate)
}

func (h *QuestionHandler) generate(c *fiber.Ctx) error {
	var payload dto.GenerateQuestionsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	generated, err := h.service.Generate(c.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrGenerationFailed) {
			requestLogger(h.logger, c).Warn().Err(err).Msg("question generation failed")
			return utils.SendError(c, fiber.StatusBadGateway, "question generation failed")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "questions generated", generated)
}

func (h *QuestionHandler) save(c *fiber.Ctx) error {
	var payload dto.SaveVivaQuestionsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	set, err := h.service.Save(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "questions saved", set)
}

func (h *QuestionHandler) get(c *fiber.Ctx) error {
	documentID, err := requiredParam(c, "documentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	set, err := h.service.Get(c.Context(), documentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "questions retrieved", set)
}

func (h *QuestionHandler) listBySubmission(c *fiber.Ctx) error {
	submissionID, err := requiredParam(c, "submissionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	sets, err := h.service.ListBySubmission(c.Context(), submissionID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "question sets retrieved", sets)
}

func (h *QuestionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrQuestionSetNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question set not found")
	case errors.Is(err, service.ErrInvalidQuestionsJSON):
		return utils.SendError(c, fiber.StatusBadRequest, "questions payload is not valid JSON")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *QuestionHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
