package http

import (
	appFeedback "github.com/RHD-founder/thukpa/pkg/app/feedback"
	domainFeedback "github.com/RHD-founder/thukpa/pkg/domain/feedback"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type analyticsHandler struct {
	logger   *logrus.Logger
	analyzer appFeedback.Analyzer
}

func NewAnalyticsHandler(logger *logrus.Logger, analyzer appFeedback.Analyzer) Handler {
	return &analyticsHandler{
		logger:   logger,
		analyzer: analyzer,
	}
}

// Handle @Summary Feedback analytics
// @Description Aggregates submissions over a trailing window of days
// @Tags Analytics
// @Produce json
// @Router /api/v1/analytics [get]
func (h *analyticsHandler) Handle(c *fiber.Ctx) error {
	filter := domainFeedback.WindowFilter{
		Days:     c.QueryInt("days", 30),
		Category: domainFeedback.Category(c.Query("category")),
	}

	analytics, err := h.analyzer.Analyze(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute analytics"})
	}
	return c.Status(fiber.StatusOK).JSON(analytics)
}
