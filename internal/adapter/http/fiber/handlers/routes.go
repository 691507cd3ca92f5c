package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Auth      *AuthHandler
	Assistant *AssistantHandler
	Task      *TaskHandler
	Goal      *GoalHandler
	Note      *NoteHandler
	Voice     *VoiceHandler
}

// RegisterRoutes mounts the API under api. Everything except login,
// register and refresh requires authRequired.
func RegisterRoutes(api fiber.Router, h Handlers, authRequired fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", authRequired, h.Auth.Logout)
	auth.Get("/me", authRequired, h.Auth.Me)

	assistant := api.Group("/assistant", authRequired)
	assistant.Post("/voice", h.Assistant.ProcessVoice)
	assistant.Get("/insights", h.Assistant.Insights)
	assistant.Get("/summary", h.Assistant.DailySummary)

	voice := api.Group("/voice", authRequired)
	voice.Post("/process", h.Voice.Transcribe)
	voice.Post("/command", h.Voice.ProcessCommand)
	voice.Post("/sessions", h.Voice.StartSession)
	voice.Get("/sessions", h.Voice.ListSessions)
	voice.Get("/sessions/:id", h.Voice.GetSession)
	voice.Post("/sessions/:id/end", h.Voice.EndSession)

	tasks := api.Group("/tasks", authRequired)
	tasks.Post("/", h.Task.Create)
	tasks.Get("/", h.Task.List)
	tasks.Get("/overdue", h.Task.Overdue)
	tasks.Get("/:id", h.Task.Get)
	tasks.Patch("/:id", h.Task.Update)
	tasks.Delete("/:id", h.Task.Delete)

	goals := api.Group("/goals", authRequired)
	goals.Post("/", h.Goal.Create)
	goals.Get("/", h.Goal.List)
	goals.Get("/:id", h.Goal.Get)
	goals.Patch("/:id", h.Goal.Update)
	goals.Patch("/:id/progress", h.Goal.UpdateProgress)
	goals.Delete("/:id", h.Goal.Delete)

	notes := api.Group("/notes", authRequired)
	notes.Post("/", h.Note.Create)
	notes.Get("/", h.Note.List)
	notes.Get("/:id", h.Note.Get)
	notes.Patch("/:id", h.Note.Update)
	notes.Delete("/:id", h.Note.Delete)
}
