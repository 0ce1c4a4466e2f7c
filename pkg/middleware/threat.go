package middleware

import (
	"strings"

	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/config"
	"github.com/RHD-founder/thukpa/pkg/infra/fingerprint"
	"github.com/RHD-founder/thukpa/pkg/infra/prometheus"
	"github.com/RHD-founder/thukpa/pkg/infra/security"
	"github.com/RHD-founder/thukpa/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Paths the threat layer never inspects. Static assets and operational
// endpoints would only add noise to the event history.
var skippedPrefixes = []string{
	"/static/",
	"/assets/",
	"/favicon.ico",
	"/health",
	"/metrics",
}

type threatMiddleware struct {
	logger    *logrus.Logger
	monitor   *security.Monitor
	generator *fingerprint.Generator
	cfg       *config.SecurityConfig
}

// NewThreatMiddleware is the dispatcher that feeds every request through the
// fingerprint generator and the detector chain.
func NewThreatMiddleware(
	logger *logrus.Logger,
	monitor *security.Monitor,
	generator *fingerprint.Generator,
	cfg *config.SecurityConfig,
) Middleware {
	return &threatMiddleware{
		logger:    logger,
		monitor:   monitor,
		generator: generator,
		cfg:       cfg,
	}
}

func (m *threatMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if skipThreatChecks(path) {
			return c.Next()
		}

		fp := m.generator.FromRequest(c)
		reqCtx := security.RequestContext{
			Fingerprint:   fp,
			FingerprintID: fp.ID(),
			IP:            utils.ClientIP(c),
			UserAgent:     c.Get(fiber.HeaderUserAgent),
			Path:          path,
			Method:        c.Method(),
		}

		c.Locals(string(common.FingerprintIdContextKey), reqCtx.FingerprintID)

		m.monitor.TrackIP(reqCtx)

		// The blocklist check runs on every path; the detector chain only on
		// sensitive ones. Ordinary traffic must not accrue events, or a
		// legitimate bot browsing public pages would eventually trip the
		// lifetime ceiling.
		if event := m.monitor.CheckBlocked(reqCtx); event != nil {
			prometheus.ThreatEventsTotal.WithLabelValues(string(event.Type), string(event.Severity)).Inc()
			prometheus.BlockedRequestsTotal.Inc()
			m.logger.WithFields(logrus.Fields{
				"fingerprint": reqCtx.FingerprintID,
				"ip":          reqCtx.IP,
				"path":        path,
				"type":        event.Type,
			}).Warn("request denied")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}

		if m.sensitivePath(path) {
			if event := m.monitor.Detect(reqCtx); event != nil {
				prometheus.ThreatEventsTotal.WithLabelValues(string(event.Type), string(event.Severity)).Inc()
				if event.Blocked {
					prometheus.BlockedRequestsTotal.Inc()
					m.logger.WithFields(logrus.Fields{
						"fingerprint": reqCtx.FingerprintID,
						"ip":          reqCtx.IP,
						"path":        path,
						"type":        event.Type,
					}).Warn("request denied")
					return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
						"error": "access denied",
					})
				}
			}
		}

		if m.isLoginAttempt(c, path) && !m.monitor.AllowLogin(reqCtx.IP) {
			prometheus.LoginRateLimitedTotal.Inc()
			if evt := m.monitor.RecordRateLimitExceeded(reqCtx); evt != nil {
				prometheus.ThreatEventsTotal.WithLabelValues(string(evt.Type), string(evt.Severity)).Inc()
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many login attempts, try again later",
			})
		}

		return c.Next()
	}
}

func (m *threatMiddleware) isLoginAttempt(c *fiber.Ctx, path string) bool {
	return c.Method() == fiber.MethodPost && strings.HasPrefix(path, m.cfg.LoginPath)
}

// sensitivePath marks the requests worth feeding through the detector chain:
// the login path and anything that looks like path traversal.
func (m *threatMiddleware) sensitivePath(path string) bool {
	return strings.HasPrefix(path, m.cfg.LoginPath) ||
		strings.Contains(path, "..") ||
		strings.Contains(path, "//")
}

func skipThreatChecks(path string) bool {
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
