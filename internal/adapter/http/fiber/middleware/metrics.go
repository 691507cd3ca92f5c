package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lyra-ai/lyra-backend/internal/observability/telemetry"
)

// Metrics counts requests by route template, not raw path, to keep
// label cardinality bounded.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		telemetry.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}
