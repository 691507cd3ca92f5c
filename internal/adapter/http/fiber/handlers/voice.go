package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type VoiceHandler struct {
	service ports.VoiceService
	log     *zap.Logger
}

func NewVoiceHandler(service ports.VoiceService, log *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		service: service,
		log:     log,
	}
}

// AudioCommandRequest is a TranscribeRequest plus the assistant context.
type AudioCommandRequest struct {
	domain.TranscribeRequest
	Context map[string]any `json:"context,omitempty"`
}

func (h *VoiceHandler) Transcribe(c *fiber.Ctx) error {
	var req domain.TranscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.AudioData == "" || req.AudioFormat == "" {
		return fail(c, fiber.StatusBadRequest, "audioData and audioFormat are required")
	}

	result, err := h.service.Transcribe(c.Context(), userID(c), req)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, result, "")
}

func (h *VoiceHandler) ProcessCommand(c *fiber.Ctx) error {
	var req AudioCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.AudioData == "" || req.AudioFormat == "" {
		return fail(c, fiber.StatusBadRequest, "audioData and audioFormat are required")
	}

	result, err := h.service.ProcessAudioCommand(c.Context(), userID(c), req.TranscribeRequest, req.Context)
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, result, "")
}

func (h *VoiceHandler) StartSession(c *fiber.Ctx) error {
	session, err := h.service.StartSession(c.Context(), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, session, "Session started")
}

func (h *VoiceHandler) EndSession(c *fiber.Ctx) error {
	session, err := h.service.EndSession(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, session, "Session ended")
}

func (h *VoiceHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, session, "")
}

func (h *VoiceHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListSessions(c.Context(), userID(c), c.QueryInt("limit", 0))
	if err != nil {
		return failErr(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, sessions, "")
}
