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

// ReportHandler wires report submission HTTP routes.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches report endpoints to the router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Post("/create", h.create)
	router.Post("/upload", h.upload)
	router.Get("/getAll", h.list)
	router.Get("/get/:id", h.get)
	router.Patch("/review/:id", h.review)
	router.Patch("/publish/:id", h.publish)
	router.Patch("/publish-by-reference/:markingReference", h.publishByReference)
	router.Patch("/publish-all", h.publishAll)
}

func (h *ReportHandler) create(c *fiber.Ctx) error {
	var payload dto.ReportCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "report submitted", report)
}

func (h *ReportHandler) upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.internalError(c, err)
	}
	defer file.Close()

	result, err := h.service.Upload(c.Context(), fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedUpload) {
			return utils.SendError(c, fiber.StatusBadRequest, "only PDF uploads are accepted")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "report uploaded", result)
}

func (h *ReportHandler) list(c *fiber.Ctx) error {
	reports, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "reports retrieved", reports)
}

func (h *ReportHandler) get(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "report retrieved", report)
}

func (h *ReportHandler) review(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReportReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.service.Review(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "report reviewed", report)
}

func (h *ReportHandler) publish(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.service.Publish(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "report published", report)
}

func (h *ReportHandler) publishByReference(c *fiber.Ctx) error {
	markingReference, err := requiredParam(c, "markingReference")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.PublishByMarkingReference(c.Context(), markingReference)
	if err != nil {
		return h.internalError(c, err)
	}

	return h.sendBulkResult(c, result)
}

func (h *ReportHandler) publishAll(c *fiber.Ctx) error {
	result, err := h.service.PublishAll(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return h.sendBulkResult(c, result)
}

// sendBulkResult answers 207 when some reports could not be published so
// callers can surface the partial failure.
func (h *ReportHandler) sendBulkResult(c *fiber.Ctx, result dto.BulkPublishResponse) error {
	if len(result.FailedUpdates) > 0 {
		return utils.SendSuccessWithStatus(c, fiber.StatusMultiStatus, "bulk publish partially completed", result)
	}
	return utils.SendSuccess(c, "bulk publish completed", result)
}

func (h *ReportHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrReportNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "report not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *ReportHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
