package utils

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var ipHeaders = []string{
	"X-Real-IP",
	"X-Forwarded-For",
	"CF-Connecting-IP",
	"True-Client-IP",
}

// ClientIP resolves the originating client address, preferring forwarded-IP
// headers over the socket peer. Header values are only trusted when they parse
// as an IP.
func ClientIP(ctx *fiber.Ctx) string {
	for _, header := range ipHeaders {
		if value := ctx.Get(header); value != "" {
			ips := strings.Split(value, ",")
			ip := strings.TrimSpace(ips[0])
			if parsed := net.ParseIP(ip); parsed != nil {
				return ip
			}
		}
	}
	return strings.TrimSpace(ctx.IP())
}
