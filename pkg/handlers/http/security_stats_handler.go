package http

import (
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type securityStatsHandler struct {
	logger  *logrus.Logger
	monitor *security.Monitor
}

func NewSecurityStatsHandler(logger *logrus.Logger, monitor *security.Monitor) Handler {
	return &securityStatsHandler{
		logger:  logger,
		monitor: monitor,
	}
}

// Handle @Summary Security overview
// @Description Returns threat totals, blocked devices and active sessions
// @Tags Security
// @Produce json
// @Router /api/v1/admin/security [get]
func (h *securityStatsHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.monitor.GetStats())
}
