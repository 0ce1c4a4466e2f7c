package http

import (
	"time"

	"github.com/RHD-founder/thukpa/pkg/domain/threat"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type threatEventsHandler struct {
	logger *logrus.Logger
	repo   threat.Repository
}

func NewThreatEventsHandler(logger *logrus.Logger, repo threat.Repository) Handler {
	return &threatEventsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Threat event history
// @Description Returns persisted threat events from a trailing window plus lifetime counts per type
// @Tags Security
// @Produce json
// @Router /api/v1/admin/security/events [get]
func (h *threatEventsHandler) Handle(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 {
		hours = 24
	}
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	events, err := h.repo.ListRecent(c.Context(), since, limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list threat events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list threat events"})
	}

	counts, err := h.repo.CountByType(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to count threat events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to count threat events"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"since":  since,
		"events": events,
		"counts": counts,
	})
}
