package http

import (
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getFeedbackHandler struct {
	logger *logrus.Logger
	finder appFeedback.Finder
}

func NewGetFeedbackHandler(logger *logrus.Logger, finder appFeedback.Finder) Handler {
	return &getFeedbackHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary Get feedback by ID
// @Tags Feedback
// @Produce json
// @Param feedback_id path string true "Feedback ID"
// @Router /api/v1/feedback/{feedback_id} [get]
func (h *getFeedbackHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("feedback_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid feedback_id"})
	}

	entity, err := h.finder.Get(c.Context(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "feedback not found"})
		}
		h.logger.WithError(err).Error("failed to get feedback")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get feedback"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
