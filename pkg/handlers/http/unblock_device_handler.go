package http

import (
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type unblockDeviceHandler struct {
	logger  *logrus.Logger
	monitor *security.Monitor
	audit   auditlogs.Service
}

func NewUnblockDeviceHandler(
	logger *logrus.Logger,
	monitor *security.Monitor,
	audit auditlogs.Service,
) Handler {
	return &unblockDeviceHandler{
		logger:  logger,
		monitor: monitor,
		audit:   audit,
	}
}

type unblockDeviceRequest struct {
	Fingerprint string `json:"fingerprint"`
}

// Handle @Summary Unblock a device
// @Description Removes a fingerprint from the blocklist; event history is retained
// @Tags Security
// @Accept json
// @Produce json
// @Router /api/v1/admin/security/unblock [post]
func (h *unblockDeviceHandler) Handle(c *fiber.Ctx) error {
	var req unblockDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Fingerprint == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fingerprint is required"})
	}

	if !h.monitor.Unblock(req.Fingerprint) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "device is not blocked"})
	}

	h.audit.Emit(c, auditlogs.Event{
		Action:     auditlogs.ActionDeviceUnblock,
		Resource:   "device",
		ResourceID: req.Fingerprint,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"fingerprint": req.Fingerprint,
		"blocked":     false,
	})
}
