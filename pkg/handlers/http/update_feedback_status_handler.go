package http

import (
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	"github.com/RHD-founder/thukpa/pkg/domain"
	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/RHD-founder/thukpa/pkg/handlers/http/request"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type updateFeedbackStatusHandler struct {
	logger  *logrus.Logger
	updater appFeedback.StatusUpdater
	audit   auditlogs.Service
}

func NewUpdateFeedbackStatusHandler(
	logger *logrus.Logger,
	updater appFeedback.StatusUpdater,
	audit auditlogs.Service,
) Handler {
	return &updateFeedbackStatusHandler{
		logger:  logger,
		updater: updater,
		audit:   audit,
	}
}

// Handle @Summary Update feedback status
// @Tags Feedback
// @Accept json
// @Produce json
// @Param feedback_id path string true "Feedback ID"
// @Router /api/v1/feedback/{feedback_id} [put]
func (h *updateFeedbackStatusHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("feedback_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid feedback_id"})
	}

	var req request.UpdateFeedbackStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status := domainFeedback.Status(req.Status)
	if err := h.updater.Update(c.Context(), id, status); err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "feedback not found"})
		}
		h.logger.WithError(err).Error("failed to update feedback status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update feedback"})
	}

	h.audit.Emit(c, auditlogs.Event{
		Action:     auditlogs.ActionFeedbackUpdate,
		Resource:   "feedback",
		ResourceID: id.String(),
		Details:    map[string]interface{}{"status": status},
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id, "status": status})
}
