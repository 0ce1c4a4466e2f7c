package http

import (
	"time"

	appAuth "github.com/RHD-founder/thukpa/pkg/app/auth"
	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/domain/user"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type logoutHandler struct {
	logger        *logrus.Logger
	authenticator appAuth.Authenticator
	monitor       *security.Monitor
	audit         auditlogs.Service
}

func NewLogoutHandler(
	logger *logrus.Logger,
	authenticator appAuth.Authenticator,
	monitor *security.Monitor,
	audit auditlogs.Service,
) Handler {
	return &logoutHandler{
		logger:        logger,
		authenticator: authenticator,
		monitor:       monitor,
		audit:         audit,
	}
}

// Handle @Summary Admin logout
// @Tags Auth
// @Produce json
// @Router /api/v1/auth/logout [post]
func (h *logoutHandler) Handle(c *fiber.Ctx) error {
	token := c.Cookies(common.SessionCookieName)
	if token != "" {
		if err := h.authenticator.Logout(c.Context(), token); err != nil {
			h.logger.WithError(err).Warn("failed to delete session")
		}
	}

	if account, ok := c.Locals(string(common.UserContextKey)).(*user.User); ok && account != nil {
		h.monitor.RemoveUser(account.ID.String())
		h.audit.Emit(c, auditlogs.Event{
			Action:     auditlogs.ActionLogout,
			Resource:   "session",
			ResourceID: account.ID.String(),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "logged out"})
}
