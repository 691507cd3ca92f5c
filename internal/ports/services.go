package ports

import (
	"context"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh, err
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

// TaskService is the task store consumed by the assistant and the REST API.
type TaskService interface {
	CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (*domain.Task, error)
	GetTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
	GetOverdueTasks(ctx context.Context, userID string) ([]domain.Task, error)
}

type GoalService interface {
	CreateGoal(ctx context.Context, userID string, input domain.CreateGoalInput) (*domain.Goal, error)
	GetGoals(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error)
	GetGoal(ctx context.Context, goalID, userID string) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, goalID, userID string, patch domain.GoalPatch) (*domain.Goal, error)
	UpdateGoalProgress(ctx context.Context, goalID, userID string, percentage int) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID, userID string) error
	GetActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error)
}

type NoteService interface {
	CreateNote(ctx context.Context, userID string, input domain.CreateNoteInput) (*domain.Note, error)
	GetNotes(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error)
	GetNote(ctx context.Context, noteID, userID string) (*domain.Note, error)
	UpdateNote(ctx context.Context, noteID, userID string, patch domain.NotePatch) (*domain.Note, error)
	DeleteNote(ctx context.Context, noteID, userID string) error
}

// AssistantService is the conversational layer on top of the stores.
type AssistantService interface {
	ProcessVoiceInput(ctx context.Context, userID, transcription string, assistantCtx map[string]any) (*domain.AssistantResponse, error)
	GetUserInsights(ctx context.Context, userID string) (*domain.UserInsights, error)
	GetDailySummary(ctx context.Context, userID string) (*domain.DailySummary, error)
}

type VoiceService interface {
	Transcribe(ctx context.Context, userID string, req domain.TranscribeRequest) (*domain.TranscriptionResult, error)
	ProcessAudioCommand(ctx context.Context, userID string, req domain.TranscribeRequest, assistantCtx map[string]any) (*domain.AudioCommandResult, error)
	StartSession(ctx context.Context, userID string) (*domain.VoiceSession, error)
	EndSession(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error)
	GetSession(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error)
	ListSessions(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error)
}

// SpeechToText turns an audio payload into text.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte, format, language string) (*domain.Transcript, error)
}

// EventPublisher is the outbound side of the message queue.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// EventSubscriber is the inbound side of the message queue.
type EventSubscriber interface {
	Subscribe(subject string, handler func(data []byte) error) error
}
