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

// MarkingSchemeHandler wires rubric HTTP routes.
type MarkingSchemeHandler struct {
	service service.MarkingSchemeService
	logger  zerolog.Logger
}

// NewMarkingSchemeHandler constructs the handler.
func NewMarkingSchemeHandler(service service.MarkingSchemeService, logger zerolog.Logger) *MarkingSchemeHandler {
	return &MarkingSchemeHandler{
		service: service,
		logger:  logger.With().Str("component", "marking_scheme_handler").Logger(),
	}
}

// Register attaches marking scheme endpoints to the router group.
func (h *MarkingSchemeHandler) Register(router fiber.Router) {
	router.Post("/create", h.create)
	router.Get("/getAll", h.list)
	router.Get("/get/:id", h.get)
	router.Get("/by-assignment/:assignmentId", h.getByAssignment)
	router.Get("/weights/:assignmentId", h.weights)
}

func (h *MarkingSchemeHandler) create(c *fiber.Ctx) error {
	var payload dto.MarkingSchemeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	scheme, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "marking scheme created", scheme)
}

func (h *MarkingSchemeHandler) list(c *fiber.Ctx) error {
	schemes, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "marking schemes retrieved", schemes)
}

func (h *MarkingSchemeHandler) get(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	scheme, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "marking scheme retrieved", scheme)
}

func (h *MarkingSchemeHandler) getByAssignment(c *fiber.Ctx) error {
	assignmentID, err := requiredParam(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	scheme, err := h.service.GetByAssignment(c.Context(), assignmentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "marking scheme retrieved", scheme)
}

func (h *MarkingSchemeHandler) weights(c *fiber.Ctx) error {
	assignmentID, err := requiredParam(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	weights, err := h.service.Weights(c.Context(), assignmentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "weights retrieved", weights)
}

func (h *MarkingSchemeHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	var weightErr *service.WeightSumError
	switch {
	case errors.Is(err, service.ErrMarkingSchemeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "marking scheme not found")
	case errors.As(err, &weightErr):
		return utils.SendError(c, fiber.StatusBadRequest, weightErr.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *MarkingSchemeHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
