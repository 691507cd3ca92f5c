package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/lyra-ai/lyra-backend/pkg/config"
)

// RateLimit keys on the authenticated user when cfg.ByUser is set and the
// auth middleware ran first, otherwise on the client IP.
func RateLimit(cfg config.RateLimitingConfig) fiber.Handler {
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	max := cfg.MaxRequests
	if max <= 0 {
		max = 120
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if cfg.ByUser {
				if id, ok := c.Locals("user_id").(string); ok && id != "" {
					return "user:" + id
				}
			}
			return "ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests",
			})
		},
	})
}
