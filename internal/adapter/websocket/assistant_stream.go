package websocket

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/ports"
)

const (
	frameResponse = "response"
	frameActions  = "actions"
	frameError    = "error"
)

type frame struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type voiceFrame struct {
	Transcription string         `json:"transcription"`
	Context       map[string]any `json:"context,omitempty"`
}

// AssistantStreamHandler answers each text frame with an assistant reply.
type AssistantStreamHandler struct {
	assistant ports.AssistantService
	hub       *Hub
	log       *zap.Logger
}

func NewAssistantStreamHandler(assistant ports.AssistantService, hub *Hub, log *zap.Logger) *AssistantStreamHandler {
	return &AssistantStreamHandler{
		assistant: assistant,
		hub:       hub,
		log:       log,
	}
}

func (h *AssistantStreamHandler) Handle(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := h.hub.Register(conn, userID)
	defer func() {
		h.hub.Unregister(client)
		client.Wait()
	}()

	h.log.Info("Assistant stream opened", zap.String("user_id", userID))
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("Assistant stream closed unexpectedly", zap.String("user_id", userID), zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			client.enqueue(mustJSON(frame{Type: frameError, Error: "text frames only"}))
			continue
		}
		client.enqueue(h.reply(context.Background(), userID, data))
	}
}

// reply turns one inbound frame into one outbound frame.
func (h *AssistantStreamHandler) reply(ctx context.Context, userID string, data []byte) []byte {
	var in voiceFrame
	if err := json.Unmarshal(data, &in); err != nil {
		return mustJSON(frame{Type: frameError, Error: "invalid JSON"})
	}
	if strings.TrimSpace(in.Transcription) == "" {
		return mustJSON(frame{Type: frameError, Error: "transcription is required"})
	}

	resp, err := h.assistant.ProcessVoiceInput(ctx, userID, in.Transcription, in.Context)
	if err != nil {
		h.log.Error("Assistant stream failed", zap.String("user_id", userID), zap.Error(err))
		return mustJSON(frame{Type: frameError, Error: "could not process request"})
	}
	return mustJSON(frame{Type: frameResponse, Data: resp})
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"error","error":"encoding failed"}`)
	}
	return b
}

// SetupRoutes mounts /ws/assistant behind auth, which must set user_id.
func SetupRoutes(app *fiber.App, handler *AssistantStreamHandler, auth fiber.Handler) {
	app.Use("/ws/assistant", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, auth)

	app.Get("/ws/assistant", websocket.New(handler.Handle))
}
