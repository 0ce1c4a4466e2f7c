package http

import (
	"errors"

	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/handlers/http/request"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type blockDeviceHandler struct {
	logger  *logrus.Logger
	monitor *security.Monitor
	audit   auditlogs.Service
}

func NewBlockDeviceHandler(
	logger *logrus.Logger,
	monitor *security.Monitor,
	audit auditlogs.Service,
) Handler {
	return &blockDeviceHandler{
		logger:  logger,
		monitor: monitor,
		audit:   audit,
	}
}

// Handle @Summary Block a device
// @Description Adds a device fingerprint to the blocklist
// @Tags Security
// @Accept json
// @Produce json
// @Router /api/v1/admin/security/block [post]
func (h *blockDeviceHandler) Handle(c *fiber.Ctx) error {
	var req request.BlockDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.monitor.Block(req.Fingerprint, req.Reason, req.Metadata); err != nil {
		if errors.Is(err, domain.ErrDeviceBlocked) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "device already blocked"})
		}
		h.logger.WithError(err).Error("failed to block device")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to block device"})
	}

	h.audit.Emit(c, auditlogs.Event{
		Action:     auditlogs.ActionDeviceBlock,
		Resource:   "device",
		ResourceID: req.Fingerprint,
		Details:    map[string]interface{}{"reason": req.Reason},
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"fingerprint": req.Fingerprint,
		"blocked":     true,
	})
}
