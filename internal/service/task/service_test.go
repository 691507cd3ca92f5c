package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestCreateTask_Defaults(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var saved *domain.Task
	mockRepo := &mocks.MockTaskRepository{
		SaveFunc: func(ctx context.Context, task *domain.Task) error {
			saved = task
			return nil
		},
	}
	service := NewService(mockRepo, newTestLogger())

	// Act
	task, err := service.CreateTask(ctx, "user-1", domain.CreateTaskInput{Title: "  Write report "})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved != task {
		t.Fatal("expected created task to be saved")
	}
	if task.ID == "" {
		t.Error("expected generated ID")
	}
	if task.Title != "Write report" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != domain.TaskStatusTodo {
		t.Errorf("expected status todo, got %s", task.Status)
	}
	if task.Priority != domain.TaskPriorityMedium {
		t.Errorf("expected medium priority, got %d", task.Priority)
	}
	if task.EstimatedDuration != 30 {
		t.Errorf("expected 30 minute estimate, got %d", task.EstimatedDuration)
	}
	if task.Source != "manual" {
		t.Errorf("expected manual source, got %s", task.Source)
	}
	if task.Tags == nil {
		t.Error("expected non-nil tags")
	}
}

func TestCreateTask_Validation(t *testing.T) {
	service := NewService(&mocks.MockTaskRepository{}, newTestLogger())

	tests := []struct {
		name  string
		input domain.CreateTaskInput
	}{
		{"empty title", domain.CreateTaskInput{Title: "   "}},
		{"priority too high", domain.CreateTaskInput{Title: "x", Priority: 5}},
		{"negative priority", domain.CreateTaskInput{Title: "x", Priority: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateTask(context.Background(), "user-1", tt.input)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestGetTask_Ownership(t *testing.T) {
	// Arrange
	mockRepo := &mocks.MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			if id == "task-1" {
				return &domain.Task{ID: "task-1", UserID: "owner"}, nil
			}
			return nil, nil
		},
	}
	service := NewService(mockRepo, newTestLogger())
	ctx := context.Background()

	// Act & Assert
	if _, err := service.GetTask(ctx, "task-1", "owner"); err != nil {
		t.Errorf("expected owner access, got %v", err)
	}
	if _, err := service.GetTask(ctx, "task-1", "intruder"); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	if _, err := service.GetTask(ctx, "missing", "owner"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTask_Patch(t *testing.T) {
	// Arrange
	existing := &domain.Task{ID: "task-1", UserID: "user-1", Title: "Old", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow}
	var updated *domain.Task
	mockRepo := &mocks.MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, task *domain.Task) error {
			updated = task
			return nil
		},
	}
	service := NewService(mockRepo, newTestLogger())
	status := domain.TaskStatusDone
	priority := domain.TaskPriorityHigh

	// Act
	task, err := service.UpdateTask(context.Background(), "task-1", "user-1", domain.TaskPatch{Status: &status, Priority: &priority})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated == nil {
		t.Fatal("expected repository update")
	}
	if task.Status != domain.TaskStatusDone || task.Priority != domain.TaskPriorityHigh {
		t.Errorf("unexpected task after patch: %+v", task)
	}
	if task.Title != "Old" {
		t.Errorf("expected title untouched, got %q", task.Title)
	}
}

func TestUpdateTask_InvalidStatus(t *testing.T) {
	mockRepo := &mocks.MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, UserID: "user-1"}, nil
		},
	}
	service := NewService(mockRepo, newTestLogger())
	status := domain.TaskStatus("blocked")

	_, err := service.UpdateTask(context.Background(), "task-1", "user-1", domain.TaskPatch{Status: &status})

	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteTask_NotOwner(t *testing.T) {
	deleted := false
	mockRepo := &mocks.MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, UserID: "owner"}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	service := NewService(mockRepo, newTestLogger())

	err := service.DeleteTask(context.Background(), "task-1", "someone-else")

	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	if deleted {
		t.Error("expected task to be kept")
	}
}

func TestGetOverdueTasks(t *testing.T) {
	// Arrange
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	mockRepo := &mocks.MockTaskRepository{
		FindByUserFunc: func(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
			return []domain.Task{
				{ID: "late", DueDate: &past, Status: domain.TaskStatusTodo},
				{ID: "late-but-done", DueDate: &past, Status: domain.TaskStatusDone},
				{ID: "upcoming", DueDate: &future, Status: domain.TaskStatusTodo},
				{ID: "no-due-date", Status: domain.TaskStatusTodo},
			}, nil
		},
	}
	service := NewService(mockRepo, newTestLogger()).(*Service)
	service.now = func() time.Time { return now }

	// Act
	tasks, err := service.GetOverdueTasks(context.Background(), "user-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "late" {
		t.Errorf("expected only the late task, got %+v", tasks)
	}
}
