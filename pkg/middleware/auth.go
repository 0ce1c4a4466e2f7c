package middleware

import (
	"github.com/RHD-founder/thukpa/pkg/app/auth"
	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type authMiddleware struct {
	logger        *logrus.Logger
	authenticator auth.Authenticator
	monitor       *security.Monitor
}

// NewAuthMiddleware guards admin routes behind the session cookie.
func NewAuthMiddleware(
	logger *logrus.Logger,
	authenticator auth.Authenticator,
	monitor *security.Monitor,
) Middleware {
	return &authMiddleware{
		logger:        logger,
		authenticator: authenticator,
		monitor:       monitor,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(common.SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		account, session, err := m.authenticator.Resolve(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session",
			})
		}

		c.Locals(string(common.UserContextKey), account)
		c.Locals(string(common.SessionContextKey), session)

		m.monitor.UpdateUserActivity(account.ID.String())

		return c.Next()
	}
}
