package middleware

import (
	"github.com/RHD-founder/thukpa/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const defaultCSP = "default-src 'self'; frame-ancestors 'none'"

type securityHeadersMiddleware struct {
	logger *logrus.Logger
	cfg    *config.SecurityConfig
}

// NewSecurityHeadersMiddleware attaches the baseline response headers to
// every request, including denied ones.
func NewSecurityHeadersMiddleware(logger *logrus.Logger, cfg *config.SecurityConfig) Middleware {
	return &securityHeadersMiddleware{
		logger: logger,
		cfg:    cfg,
	}
}

func (m *securityHeadersMiddleware) Middleware() fiber.Handler {
	csp := m.cfg.ContentSecurityPolicy
	if csp == "" {
		csp = defaultCSP
	}
	return func(c *fiber.Ctx) error {
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Set("Content-Security-Policy", csp)
		c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		return c.Next()
	}
}
