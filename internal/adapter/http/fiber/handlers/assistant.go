package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type AssistantHandler struct {
	service ports.AssistantService
	log     *zap.Logger
}

func NewAssistantHandler(service ports.AssistantService, log *zap.Logger) *AssistantHandler {
	return &AssistantHandler{service: service, log: log}
}

type VoiceInputRequest struct {
	Transcription string         `json:"transcription"`
	Context       map[string]any `json:"context,omitempty"`
}

func (h *AssistantHandler) ProcessVoice(c *fiber.Ctx) error {
	var req VoiceInputRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Transcription) == "" {
		return fail(c, fiber.StatusBadRequest, "Transcription is required")
	}

	resp, err := h.service.ProcessVoiceInput(c.Context(), userID(c), req.Transcription, req.Context)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, resp, "")
}

func (h *AssistantHandler) Insights(c *fiber.Ctx) error {
	insights, err := h.service.GetUserInsights(c.Context(), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, insights, "")
}

func (h *AssistantHandler) DailySummary(c *fiber.Ctx) error {
	summary, err := h.service.GetDailySummary(c.Context(), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, summary, "")
}
