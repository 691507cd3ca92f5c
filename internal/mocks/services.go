package mocks

import (
	"context"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

// MockTaskService is a mock implementation of ports.TaskService
type MockTaskService struct {
	CreateTaskFunc      func(ctx context.Context, userID string, input domain.CreateTaskInput) (*domain.Task, error)
	GetTasksFunc        func(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	GetTaskFunc         func(ctx context.Context, taskID, userID string) (*domain.Task, error)
	UpdateTaskFunc      func(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFunc      func(ctx context.Context, taskID, userID string) error
	GetOverdueTasksFunc func(ctx context.Context, userID string) ([]domain.Task, error)
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (*domain.Task, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, userID, input)
	}
	return &domain.Task{ID: "task-1", UserID: userID, Title: input.Title, Status: domain.TaskStatusTodo, Priority: input.Priority}, nil
}

func (m *MockTaskService) GetTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	if m.GetTasksFunc != nil {
		return m.GetTasksFunc(ctx, userID, filter)
	}
	return []domain.Task{}, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, taskID, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockTaskService) UpdateTask(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, taskID, userID, patch)
	}
	return &domain.Task{ID: taskID, UserID: userID}, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, taskID, userID)
	}
	return nil
}

func (m *MockTaskService) GetOverdueTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	if m.GetOverdueTasksFunc != nil {
		return m.GetOverdueTasksFunc(ctx, userID)
	}
	return []domain.Task{}, nil
}

// MockGoalService is a mock implementation of ports.GoalService
type MockGoalService struct {
	CreateGoalFunc         func(ctx context.Context, userID string, input domain.CreateGoalInput) (*domain.Goal, error)
	GetGoalsFunc           func(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error)
	GetGoalFunc            func(ctx context.Context, goalID, userID string) (*domain.Goal, error)
	UpdateGoalFunc         func(ctx context.Context, goalID, userID string, patch domain.GoalPatch) (*domain.Goal, error)
	UpdateGoalProgressFunc func(ctx context.Context, goalID, userID string, percentage int) (*domain.Goal, error)
	DeleteGoalFunc         func(ctx context.Context, goalID, userID string) error
	GetActiveGoalsFunc     func(ctx context.Context, userID string) ([]domain.Goal, error)
}

func (m *MockGoalService) CreateGoal(ctx context.Context, userID string, input domain.CreateGoalInput) (*domain.Goal, error) {
	if m.CreateGoalFunc != nil {
		return m.CreateGoalFunc(ctx, userID, input)
	}
	return &domain.Goal{ID: "goal-1", UserID: userID, Title: input.Title, Status: domain.GoalStatusActive}, nil
}

func (m *MockGoalService) GetGoals(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error) {
	if m.GetGoalsFunc != nil {
		return m.GetGoalsFunc(ctx, userID, filter)
	}
	return []domain.Goal{}, nil
}

func (m *MockGoalService) GetGoal(ctx context.Context, goalID, userID string) (*domain.Goal, error) {
	if m.GetGoalFunc != nil {
		return m.GetGoalFunc(ctx, goalID, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockGoalService) UpdateGoal(ctx context.Context, goalID, userID string, patch domain.GoalPatch) (*domain.Goal, error) {
	if m.UpdateGoalFunc != nil {
		return m.UpdateGoalFunc(ctx, goalID, userID, patch)
	}
	return &domain.Goal{ID: goalID, UserID: userID}, nil
}

func (m *MockGoalService) UpdateGoalProgress(ctx context.Context, goalID, userID string, percentage int) (*domain.Goal, error) {
	if m.UpdateGoalProgressFunc != nil {
		return m.UpdateGoalProgressFunc(ctx, goalID, userID, percentage)
	}
	return &domain.Goal{ID: goalID, UserID: userID, Progress: domain.GoalProgress{Percentage: percentage}}, nil
}

func (m *MockGoalService) DeleteGoal(ctx context.Context, goalID, userID string) error {
	if m.DeleteGoalFunc != nil {
		return m.DeleteGoalFunc(ctx, goalID, userID)
	}
	return nil
}

func (m *MockGoalService) GetActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	if m.GetActiveGoalsFunc != nil {
		return m.GetActiveGoalsFunc(ctx, userID)
	}
	return []domain.Goal{}, nil
}

// MockNoteService is a mock implementation of ports.NoteService
type MockNoteService struct {
	CreateNoteFunc func(ctx context.Context, userID string, input domain.CreateNoteInput) (*domain.Note, error)
	GetNotesFunc   func(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error)
	GetNoteFunc    func(ctx context.Context, noteID, userID string) (*domain.Note, error)
	UpdateNoteFunc func(ctx context.Context, noteID, userID string, patch domain.NotePatch) (*domain.Note, error)
	DeleteNoteFunc func(ctx context.Context, noteID, userID string) error
}

func (m *MockNoteService) CreateNote(ctx context.Context, userID string, input domain.CreateNoteInput) (*domain.Note, error) {
	if m.CreateNoteFunc != nil {
		return m.CreateNoteFunc(ctx, userID, input)
	}
	return &domain.Note{ID: "note-1", UserID: userID, Title: input.Title, Content: input.Content}, nil
}

func (m *MockNoteService) GetNotes(ctx context.Context, userID string, filter domain.NoteFilter) ([]domain.Note, error) {
	if m.GetNotesFunc != nil {
		return m.GetNotesFunc(ctx, userID, filter)
	}
	return []domain.Note{}, nil
}

func (m *MockNoteService) GetNote(ctx context.Context, noteID, userID string) (*domain.Note, error) {
	if m.GetNoteFunc != nil {
		return m.GetNoteFunc(ctx, noteID, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockNoteService) UpdateNote(ctx context.Context, noteID, userID string, patch domain.NotePatch) (*domain.Note, error) {
	if m.UpdateNoteFunc != nil {
		return m.UpdateNoteFunc(ctx, noteID, userID, patch)
	}
	return &domain.Note{ID: noteID, UserID: userID}, nil
}

func (m *MockNoteService) DeleteNote(ctx context.Context, noteID, userID string) error {
	if m.DeleteNoteFunc != nil {
		return m.DeleteNoteFunc(ctx, noteID, userID)
	}
	return nil
}

// MockAssistantService is a mock implementation of ports.AssistantService
type MockAssistantService struct {
	ProcessVoiceInputFunc func(ctx context.Context, userID, transcription string, assistantCtx map[string]any) (*domain.AssistantResponse, error)
	GetUserInsightsFunc   func(ctx context.Context, userID string) (*domain.UserInsights, error)
	GetDailySummaryFunc   func(ctx context.Context, userID string) (*domain.DailySummary, error)
}

func (m *MockAssistantService) ProcessVoiceInput(ctx context.Context, userID, transcription string, assistantCtx map[string]any) (*domain.AssistantResponse, error) {
	if m.ProcessVoiceInputFunc != nil {
		return m.ProcessVoiceInputFunc(ctx, userID, transcription, assistantCtx)
	}
	return &domain.AssistantResponse{Intent: domain.IntentGeneral, Outcome: domain.OutcomeUnrecognized, Actions: []domain.Action{}}, nil
}

func (m *MockAssistantService) GetUserInsights(ctx context.Context, userID string) (*domain.UserInsights, error) {
	if m.GetUserInsightsFunc != nil {
		return m.GetUserInsightsFunc(ctx, userID)
	}
	return &domain.UserInsights{}, nil
}

func (m *MockAssistantService) GetDailySummary(ctx context.Context, userID string) (*domain.DailySummary, error) {
	if m.GetDailySummaryFunc != nil {
		return m.GetDailySummaryFunc(ctx, userID)
	}
	return &domain.DailySummary{}, nil
}

// MockVoiceService is a mock implementation of ports.VoiceService
type MockVoiceService struct {
	TranscribeFunc          func(ctx context.Context, userID string, req domain.TranscribeRequest) (*domain.TranscriptionResult, error)
	ProcessAudioCommandFunc func(ctx context.Context, userID string, req domain.TranscribeRequest, assistantCtx map[string]any) (*domain.AudioCommandResult, error)
	StartSessionFunc        func(ctx context.Context, userID string) (*domain.VoiceSession, error)
	EndSessionFunc          func(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error)
	GetSessionFunc          func(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error)
	ListSessionsFunc        func(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error)
}

func (m *MockVoiceService) Transcribe(ctx context.Context, userID string, req domain.TranscribeRequest) (*domain.TranscriptionResult, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, userID, req)
	}
	return &domain.TranscriptionResult{}, nil
}

func (m *MockVoiceService) ProcessAudioCommand(ctx context.Context, userID string, req domain.TranscribeRequest, assistantCtx map[string]any) (*domain.AudioCommandResult, error) {
	if m.ProcessAudioCommandFunc != nil {
		return m.ProcessAudioCommandFunc(ctx, userID, req, assistantCtx)
	}
	return &domain.AudioCommandResult{}, nil
}

func (m *MockVoiceService) StartSession(ctx context.Context, userID string) (*domain.VoiceSession, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, userID)
	}
	return &domain.VoiceSession{ID: "session-1", UserID: userID, Status: domain.VoiceSessionActive}, nil
}

func (m *MockVoiceService) EndSession(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error) {
	if m.EndSessionFunc != nil {
		return m.EndSessionFunc(ctx, sessionID, userID)
	}
	return &domain.VoiceSession{ID: sessionID, UserID: userID, Status: domain.VoiceSessionCompleted}, nil
}

func (m *MockVoiceService) GetSession(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockVoiceService) ListSessions(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx, userID, limit)
	}
	return []domain.VoiceSession{}, nil
}

// MockSpeechToText is a mock implementation of ports.SpeechToText
type MockSpeechToText struct {
	TranscribeFunc func(ctx context.Context, audio []byte, format, language string) (*domain.Transcript, error)
}

func (m *MockSpeechToText) Transcribe(ctx context.Context, audio []byte, format, language string) (*domain.Transcript, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, format, language)
	}
	return &domain.Transcript{Language: language, Confidence: 0.9}, nil
}

// MockAuthService is a mock implementation of ports.AuthService
type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, name, email, password string) (*domain.User, error)
	LoginFunc         func(ctx context.Context, email, password string) (string, string, error)
	RefreshTokenFunc  func(ctx context.Context, refreshToken string) (string, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	LogoutFunc        func(ctx context.Context, token string) error
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &domain.User{ID: "user-1", Name: name, Email: email, Role: domain.UserRoleUser}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "access-token", "refresh-token", nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return "access-token", nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, domain.ErrInvalidToken
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}
