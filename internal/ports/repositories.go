package ports

import (
	"context"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

// Find* methods return (nil, nil) when the record does not exist.

type TaskRepository interface {
	Save(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByUser(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type GoalRepository interface {
	Save(ctx context.Context, goal *domain.Goal) error
	FindByID(ctx context.Context, id string) (*domain.Goal, error)
	FindByUser(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type NoteRepository interface {
	Save(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	FindByUser(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}

type VoiceRepository interface {
	SaveSession(ctx context.Context, session *domain.VoiceSession) error
	FindSession(ctx context.Context, id string) (*domain.VoiceSession, error)
	FindSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error)
	UpdateSession(ctx context.Context, session *domain.VoiceSession) error
	// SaveTranscription stores t and, when t.SessionID is set, adds its
	// duration to the session total.
	SaveTranscription(ctx context.Context, t *domain.Transcription) error
}

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
