package http

import (
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type feedbackStatsHandler struct {
	logger *logrus.Logger
	stats  appFeedback.StatsProvider
}

func NewFeedbackStatsHandler(logger *logrus.Logger, stats appFeedback.StatsProvider) Handler {
	return &feedbackStatsHandler{
		logger: logger,
		stats:  stats,
	}
}

// Handle @Summary Feedback statistics
// @Tags Feedback
// @Produce json
// @Router /api/v1/feedback/stats [get]
func (h *feedbackStatsHandler) Handle(c *fiber.Ctx) error {
	stats, err := h.stats.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute stats"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
