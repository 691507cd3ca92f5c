package mocks

import (
	"context"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

// MockTaskRepository is a mock implementation of ports.TaskRepository
type MockTaskRepository struct {
	SaveFunc       func(ctx context.Context, task *domain.Task) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Task, error)
	FindByUserFunc func(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	UpdateFunc     func(ctx context.Context, task *domain.Task) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *MockTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByUser(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID, filter)
	}
	return []domain.Task{}, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockGoalRepository is a mock implementation of ports.GoalRepository
type MockGoalRepository struct {
	SaveFunc       func(ctx context.Context, goal *domain.Goal) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Goal, error)
	FindByUserFunc func(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error)
	UpdateFunc     func(ctx context.Context, goal *domain.Goal) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *MockGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, goal)
	}
	return nil
}

func (m *MockGoalRepository) FindByID(ctx context.Context, id string) (*domain.Goal, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockGoalRepository) FindByUser(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID, filter)
	}
	return []domain.Goal{}, nil
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, goal)
	}
	return nil
}

func (m *MockGoalRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockNoteRepository is a mock implementation of ports.NoteRepository
type MockNoteRepository struct {
	SaveFunc       func(ctx context.Context, note *domain.Note) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Note, error)
	FindByUserFunc func(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error)
	UpdateFunc     func(ctx context.Context, note *domain.Note) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *MockNoteRepository) Save(ctx context.Context, note *domain.Note) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, note)
	}
	return nil
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockNoteRepository) FindByUser(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID, filter)
	}
	return []domain.Note{}, nil
}

func (m *MockNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, note)
	}
	return nil
}

func (m *MockNoteRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockVoiceRepository is a mock implementation of ports.VoiceRepository
type MockVoiceRepository struct {
	SaveSessionFunc        func(ctx context.Context, session *domain.VoiceSession) error
	FindSessionFunc        func(ctx context.Context, id string) (*domain.VoiceSession, error)
	FindSessionsByUserFunc func(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error)
	UpdateSessionFunc      func(ctx context.Context, session *domain.VoiceSession) error
	SaveTranscriptionFunc  func(ctx context.Context, t *domain.Transcription) error
}

func (m *MockVoiceRepository) SaveSession(ctx context.Context, session *domain.VoiceSession) error {
	if m.SaveSessionFunc != nil {
		return m.SaveSessionFunc(ctx, session)
	}
	return nil
}

func (m *MockVoiceRepository) FindSession(ctx context.Context, id string) (*domain.VoiceSession, error) {
	if m.FindSessionFunc != nil {
		return m.FindSessionFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVoiceRepository) FindSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error) {
	if m.FindSessionsByUserFunc != nil {
		return m.FindSessionsByUserFunc(ctx, userID, limit)
	}
	return []domain.VoiceSession{}, nil
}

func (m *MockVoiceRepository) UpdateSession(ctx context.Context, session *domain.VoiceSession) error {
	if m.UpdateSessionFunc != nil {
		return m.UpdateSessionFunc(ctx, session)
	}
	return nil
}

func (m *MockVoiceRepository) SaveTranscription(ctx context.Context, t *domain.Transcription) error {
	if m.SaveTranscriptionFunc != nil {
		return m.SaveTranscriptionFunc(ctx, t)
	}
	return nil
}

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	SaveFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}
