package middleware

import (
	"strconv"
	"time"

	"github.com/RHD-founder/thukpa/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{
		logger: logger,
	}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		prometheus.RequestTotal.WithLabelValues(c.Method(), strconv.Itoa(status)).Inc()
		prometheus.RequestLatency.WithLabelValues(c.Method()).
			Observe(float64(time.Since(start).Milliseconds()))

		return err
	}
}
