package http

import (
	"github.com/RHD-founder/thukpa/pkg/domain/auditlog"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type auditLogsHandler struct {
	logger *logrus.Logger
	repo   auditlog.Repository
}

func NewAuditLogsHandler(logger *logrus.Logger, repo auditlog.Repository) Handler {
	return &auditLogsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Audit trail
// @Description Returns the most recent administrative audit entries
// @Tags Security
// @Produce json
// @Router /api/v1/admin/audit [get]
func (h *auditLogsHandler) Handle(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.repo.ListRecent(c.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list audit entries")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list audit entries"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"entries": entries})
}
