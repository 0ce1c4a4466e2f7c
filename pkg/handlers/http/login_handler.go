package http

import (
	"errors"
	"time"

	appAuth "github.com/RHD-founder/thukpa/pkg/app/auth"
	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/handlers/http/request"
	"github.com/RHD-founder/thukpa/pkg/infra/auditlogs"
	"github.com/RHD-founder/thukpa/pkg/infra/fingerprint"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/RHD-founder/thukpa/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type loginHandler struct {
	logger        *logrus.Logger
	authenticator appAuth.Authenticator
	monitor       *security.Monitor
	generator     *fingerprint.Generator
	audit         auditlogs.Service
	secureCookie  bool
}

func NewLoginHandler(
	logger *logrus.Logger,
	authenticator appAuth.Authenticator,
	monitor *security.Monitor,
	generator *fingerprint.Generator,
	audit auditlogs.Service,
	secureCookie bool,
) Handler {
	return &loginHandler{
		logger:        logger,
		authenticator: authenticator,
		monitor:       monitor,
		generator:     generator,
		audit:         audit,
		secureCookie:  secureCookie,
	}
}

// Handle @Summary Admin login
// @Description Authenticates an admin and sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Router /api/v1/auth/login [post]
func (h *loginHandler) Handle(c *fiber.Ctx) error {
	var req request.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	client := appAuth.ClientInfo{
		IPAddress: utils.ClientIP(c),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}

	account, session, err := h.authenticator.Login(c.Context(), req.Email, req.Password, client)
	if err != nil {
		// Unknown emails and wrong passwords both surface as
		// ErrInvalidCredentials, so the audit trail cannot tell them apart.
		reason := "invalid_credentials"
		switch {
		case errors.Is(err, domain.ErrAccountInactive):
			reason = "account_inactive"
		case !errors.Is(err, domain.ErrInvalidCredentials):
			h.logger.WithError(err).Error("login failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
		}
		h.audit.Emit(c, auditlogs.Event{
			Action:   auditlogs.ActionLoginFailed,
			Resource: "session",
			Details:  map[string]interface{}{"email": req.Email, "reason": reason},
		})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	fp := h.generator.FromRequest(c)
	h.monitor.TrackUserLogin(account.ID.String(), security.RequestContext{
		Fingerprint:   fp,
		FingerprintID: fp.ID(),
		IP:            client.IPAddress,
		UserAgent:     client.UserAgent,
		Path:          c.Path(),
		Method:        c.Method(),
		UserID:        account.ID.String(),
	})

	c.Locals(string(common.UserContextKey), account)
	h.audit.Emit(c, auditlogs.Event{
		Action:     auditlogs.ActionLogin,
		Resource:   "session",
		ResourceID: account.ID.String(),
	})

	c.Cookie(&fiber.Cookie{
		Name:     common.SessionCookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":    account.ID,
			"email": account.Email,
			"name":  account.Name,
			"role":  account.Role,
		},
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	})
}
