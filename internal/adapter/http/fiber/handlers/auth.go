package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type AuthHandler struct {
	service ports.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service ports.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	access, refresh, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		return failErr(c, h.log, err)
	}

	user, err := h.service.ValidateToken(c.Context(), access)
	if err != nil {
		return failErr(c, h.log, err)
	}

	return ok(c, fiber.StatusOK, fiber.Map{
		"user":   user,
		"tokens": tokenPair{AccessToken: access, RefreshToken: refresh},
	}, "Login successful")
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return failErr(c, h.log, err)
	}

	// Auto-login after registration
	access, refresh, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return ok(c, fiber.StatusCreated, fiber.Map{"user": user}, "Registered")
	}

	return ok(c, fiber.StatusCreated, fiber.Map{
		"user":   user,
		"tokens": tokenPair{AccessToken: access, RefreshToken: refresh},
	}, "Registered")
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return fail(c, fiber.StatusBadRequest, "Refresh token is required")
	}

	access, err := h.service.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return failErr(c, h.log, err)
	}

	return ok(c, fiber.StatusOK, tokenPair{AccessToken: access, RefreshToken: req.RefreshToken}, "")
}

// Logout revokes the bearer token of the request.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if token == "" {
		return fail(c, fiber.StatusUnauthorized, "Missing authorization header")
	}
	if err := h.service.Logout(c.Context(), token); err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, nil, "Logged out")
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := c.Locals("user")
	if user == nil {
		return fail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	return ok(c, fiber.StatusOK, user, "")
}
