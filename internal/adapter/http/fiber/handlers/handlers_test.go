package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/mocks"
)

func newTestLogger() *zap.Logger {
	log, _ := zap.NewDevelopment()
	return log
}

type testDeps struct {
	auth      *mocks.MockAuthService
	assistant *mocks.MockAssistantService
	tasks     *mocks.MockTaskService
	goals     *mocks.MockGoalService
	notes     *mocks.MockNoteService
	voice     *mocks.MockVoiceService
}

func newDeps() *testDeps {
	return &testDeps{
		auth:      &mocks.MockAuthService{},
		assistant: &mocks.MockAssistantService{},
		tasks:     &mocks.MockTaskService{},
		goals:     &mocks.MockGoalService{},
		notes:     &mocks.MockNoteService{},
		voice:     &mocks.MockVoiceService{},
	}
}

// newTestApp mounts the routes with an auth stub that trusts X-User.
func newTestApp(d *testDeps) *fiber.App {
	log := newTestLogger()
	app := fiber.New()
	fakeAuth := func(c *fiber.Ctx) error {
		id := c.Get("X-User")
		if id == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("user_id", id)
		return c.Next()
	}
	RegisterRoutes(app.Group("/api/v1"), Handlers{
		Auth:      NewAuthHandler(d.auth, log),
		Assistant: NewAssistantHandler(d.assistant, log),
		Task:      NewTaskHandler(d.tasks, log),
		Goal:      NewGoalHandler(d.goals, log),
		Note:      NewNoteHandler(d.notes, log),
		Voice:     NewVoiceHandler(d.voice, log),
	}, fakeAuth)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, Response) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "user-1")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out Response
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestAssistant_ProcessVoice(t *testing.T) {
	// Arrange
	d := newDeps()
	var gotUser, gotText string
	d.assistant.ProcessVoiceInputFunc = func(ctx context.Context, userID, transcription string, assistantCtx map[string]any) (*domain.AssistantResponse, error) {
		gotUser, gotText = userID, transcription
		return &domain.AssistantResponse{Text: "ok", Intent: domain.IntentCreateTask, Outcome: domain.OutcomeResolved}, nil
	}
	app := newTestApp(d)

	// Act
	status, body := do(t, app, http.MethodPost, "/api/v1/assistant/voice", map[string]any{"transcription": "create task pay rent"})

	// Assert
	if status != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success, got %d %+v", status, body)
	}
	if gotUser != "user-1" || gotText != "create task pay rent" {
		t.Errorf("unexpected call: %s %q", gotUser, gotText)
	}
	data := body.Data.(map[string]interface{})
	if data["intent"] != "create_task" {
		t.Errorf("expected create_task in data, got %v", data["intent"])
	}
}

func TestAssistant_ProcessVoice_EmptyTranscription(t *testing.T) {
	app := newTestApp(newDeps())

	status, body := do(t, app, http.MethodPost, "/api/v1/assistant/voice", map[string]any{"transcription": "  "})

	if status != http.StatusBadRequest || body.Success {
		t.Errorf("expected 400 failure, got %d %+v", status, body)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"access denied", domain.ErrAccessDenied, http.StatusForbidden, "access denied"},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			d.tasks.GetTaskFunc = func(ctx context.Context, taskID, userID string) (*domain.Task, error) {
				return nil, tt.err
			}
			app := newTestApp(d)

			status, body := do(t, app, http.MethodGet, "/api/v1/tasks/t-1", nil)

			if status != tt.status {
				t.Errorf("expected %d, got %d", tt.status, status)
			}
			if body.Error != tt.msg {
				t.Errorf("expected error %q, got %q", tt.msg, body.Error)
			}
		})
	}
}

func TestTasks_OverdueNotShadowedByID(t *testing.T) {
	d := newDeps()
	called := false
	d.tasks.GetOverdueTasksFunc = func(ctx context.Context, userID string) ([]domain.Task, error) {
		called = true
		return []domain.Task{}, nil
	}
	app := newTestApp(d)

	status, _ := do(t, app, http.MethodGet, "/api/v1/tasks/overdue", nil)

	if status != http.StatusOK || !called {
		t.Errorf("expected overdue handler, got %d called=%v", status, called)
	}
}

func TestTasks_ListParsesFilter(t *testing.T) {
	d := newDeps()
	var got domain.TaskFilter
	d.tasks.GetTasksFunc = func(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
		got = filter
		return []domain.Task{}, nil
	}
	app := newTestApp(d)

	do(t, app, http.MethodGet, "/api/v1/tasks?status=todo&priority=3&goalId=g-1", nil)

	if got.Status != domain.TaskStatusTodo || got.Priority != domain.TaskPriorityHigh || got.GoalID != "g-1" {
		t.Errorf("unexpected filter %+v", got)
	}
}

func TestGoals_UpdateProgress(t *testing.T) {
	// Arrange
	d := newDeps()
	var gotPct int
	d.goals.UpdateGoalProgressFunc = func(ctx context.Context, goalID, userID string, percentage int) (*domain.Goal, error) {
		gotPct = percentage
		return &domain.Goal{ID: goalID}, nil
	}
	app := newTestApp(d)

	// Act
	missing, _ := do(t, app, http.MethodPatch, "/api/v1/goals/g-1/progress", map[string]any{})
	status, _ := do(t, app, http.MethodPatch, "/api/v1/goals/g-1/progress", map[string]any{"percentage": 0})

	// Assert
	if missing != http.StatusBadRequest {
		t.Errorf("expected 400 without percentage, got %d", missing)
	}
	if status != http.StatusOK || gotPct != 0 {
		t.Errorf("expected 200 with percentage 0, got %d %d", status, gotPct)
	}
}

func TestVoice_UnsupportedFormat(t *testing.T) {
	d := newDeps()
	d.voice.TranscribeFunc = func(ctx context.Context, userID string, req domain.TranscribeRequest) (*domain.TranscriptionResult, error) {
		return nil, domain.ErrUnsupportedAudioFormat
	}
	app := newTestApp(d)

	status, body := do(t, app, http.MethodPost, "/api/v1/voice/process", map[string]any{"audioData": "AAAA", "audioFormat": "flac"})

	if status != http.StatusBadRequest || body.Error != "unsupported audio format" {
		t.Errorf("expected 400 unsupported format, got %d %+v", status, body)
	}
}

func TestVoice_CommandPassesContext(t *testing.T) {
	d := newDeps()
	var gotCtx map[string]any
	var gotReq domain.TranscribeRequest
	d.voice.ProcessAudioCommandFunc = func(ctx context.Context, userID string, req domain.TranscribeRequest, assistantCtx map[string]any) (*domain.AudioCommandResult, error) {
		gotReq, gotCtx = req, assistantCtx
		return &domain.AudioCommandResult{}, nil
	}
	app := newTestApp(d)

	status, _ := do(t, app, http.MethodPost, "/api/v1/voice/command", map[string]any{
		"audioData": "AAAA", "audioFormat": "wav", "sessionId": "s-1", "context": map[string]any{"screen": "home"},
	})

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if gotReq.SessionID != "s-1" || gotReq.AudioFormat != "wav" {
		t.Errorf("unexpected request %+v", gotReq)
	}
	if gotCtx["screen"] != "home" {
		t.Errorf("expected context to be forwarded, got %v", gotCtx)
	}
}

func TestAuth_Login(t *testing.T) {
	// Arrange
	d := newDeps()
	d.auth.ValidateTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
		return &domain.User{ID: "user-1", Email: "ada@example.com"}, nil
	}
	app := newTestApp(d)

	// Act
	status, body := do(t, app, http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "ada@example.com", "password": "secret123"})

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, body)
	}
	tokens := body.Data.(map[string]interface{})["tokens"].(map[string]interface{})
	if tokens["accessToken"] != "access-token" || tokens["refreshToken"] != "refresh-token" {
		t.Errorf("unexpected tokens %v", tokens)
	}
}

func TestAuth_LoginInvalidCredentials(t *testing.T) {
	d := newDeps()
	d.auth.LoginFunc = func(ctx context.Context, email, password string) (string, string, error) {
		return "", "", domain.ErrInvalidCredentials
	}
	app := newTestApp(d)

	status, _ := do(t, app, http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "ada@example.com", "password": "nope"})

	if status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", status)
	}
}

func TestAuth_RegisterConflict(t *testing.T) {
	d := newDeps()
	d.auth.RegisterFunc = func(ctx context.Context, name, email, password string) (*domain.User, error) {
		return nil, domain.ErrEmailTaken
	}
	app := newTestApp(d)

	status, _ := do(t, app, http.MethodPost, "/api/v1/auth/register", map[string]any{"name": "Ada", "email": "ada@example.com", "password": "secret123"})

	if status != http.StatusConflict {
		t.Errorf("expected 409, got %d", status)
	}
}
