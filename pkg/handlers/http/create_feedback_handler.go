package http

import (
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	"github.com/RHD-founder/thukpa/pkg/handlers/http/request"
	"github.com/RHD-founder/thukpa/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createFeedbackHandler struct {
	logger  *logrus.Logger
	creator appFeedback.Creator
}

func NewCreateFeedbackHandler(logger *logrus.Logger, creator appFeedback.Creator) Handler {
	return &createFeedbackHandler{
		logger:  logger,
		creator: creator,
	}
}

// Handle @Summary Submit feedback
// @Description Accepts a customer feedback submission
// @Tags Feedback
// @Accept json
// @Produce json
// @Success 201 {object} feedback.Feedback
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Router /api/v1/feedback [post]
func (h *createFeedbackHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entity, err := h.creator.Create(c.Context(), &req, appFeedback.Submission{
		IPAddress: utils.ClientIP(c),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to create feedback")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store feedback"})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
