package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lyra-ai/lyra-backend/internal/ports"
)

// AuthRequired validates the bearer token and stores the user in Locals
// ("user", "user_id", "user_role").
func AuthRequired(service ports.AuthService) fiber.Handler {
	return authenticate(service, func(c *fiber.Ctx) (string, string) {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return "", "Missing authorization header"
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", "Invalid authorization header format"
		}
		return parts[1], ""
	})
}

// QueryTokenAuth reads the token from ?token=, for browser WebSocket
// clients that cannot set headers.
func QueryTokenAuth(service ports.AuthService) fiber.Handler {
	return authenticate(service, func(c *fiber.Ctx) (string, string) {
		if t := c.Query("token"); t != "" {
			return t, ""
		}
		return "", "Missing token"
	})
}

func authenticate(service ports.AuthService, extract func(*fiber.Ctx) (string, string)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, problem := extract(c)
		if problem != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": problem})
		}

		user, err := service.ValidateToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user", user)

		return c.Next()
	}
}
