package http

import (
	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type meHandler struct {
	logger *logrus.Logger
}

func NewMeHandler(logger *logrus.Logger) Handler {
	return &meHandler{
		logger: logger,
	}
}

// Handle @Summary Current admin user
// @Tags Auth
// @Produce json
// @Router /api/v1/auth/me [get]
func (h *meHandler) Handle(c *fiber.Ctx) error {
	account, ok := c.Locals(string(common.UserContextKey)).(*user.User)
	if !ok || account == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	return c.Status(fiber.StatusOK).JSON(account)
}
