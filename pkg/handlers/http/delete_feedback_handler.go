package http

import (
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deleteFeedbackHandler struct {
	logger  *logrus.Logger
	deleter appFeedback.Deleter
	audit   auditlogs.Service
}

func NewDeleteFeedbackHandler(
	logger *logrus.Logger,
	deleter appFeedback.Deleter,
	audit auditlogs.Service,
) Handler {
	return &deleteFeedbackHandler{
		logger:  logger,
		deleter: deleter,
		audit:   audit,
	}
}

// Handle @Summary Delete feedback
// @Tags Feedback
// @Param feedback_id path string true "Feedback ID"
// @Router /api/v1/feedback/{feedback_id} [delete]
func (h *deleteFeedbackHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("feedback_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid feedback_id"})
	}

	if err := h.deleter.Delete(c.Context(), id); err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "feedback not found"})
		}
		h.logger.WithError(err).Error("failed to delete feedback")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete feedback"})
	}

	h.audit.Emit(c, auditlogs.Event{
		Action:     auditlogs.ActionFeedbackDelete,
		Resource:   "feedback",
		ResourceID: id.String(),
	})

	return c.SendStatus(fiber.StatusNoContent)
}
