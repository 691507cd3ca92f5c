package goal

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

func TestCreateGoal_Defaults(t *testing.T) {
	// Arrange
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	service := NewService(&mocks.MockGoalRepository{}, newTestLogger()).(*Service)
	service.now = func() time.Time { return now }

	// Act
	goal, err := service.CreateGoal(context.Background(), "user-1", domain.CreateGoalInput{
		Title:   "Run a marathon",
		DueDate: now.Add(90 * 24 * time.Hour),
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if goal.Status != domain.GoalStatusActive {
		t.Errorf("expected active, got %s", goal.Status)
	}
	if goal.Progress.TargetValue != 100 || goal.Progress.Unit != "percentage" {
		t.Errorf("unexpected progress defaults: %+v", goal.Progress)
	}
	if goal.Priority != "medium" {
		t.Errorf("expected medium priority, got %s", goal.Priority)
	}
	if !goal.StartDate.Equal(now) {
		t.Errorf("expected start date to default to now, got %v", goal.StartDate)
	}
}

func TestCreateGoal_DueBeforeStart(t *testing.T) {
	service := NewService(&mocks.MockGoalRepository{}, newTestLogger())
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.CreateGoal(context.Background(), "user-1", domain.CreateGoalInput{
		Title:     "Backwards",
		StartDate: start,
		DueDate:   start.Add(-time.Hour),
	})

	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateGoalProgress(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		percentage int
		status     domain.GoalStatus
		completed  bool
	}{
		{"partial", 40, 40, domain.GoalStatusActive, false},
		{"exactly done", 100, 100, domain.GoalStatusCompleted, true},
		{"clamped high", 250, 100, domain.GoalStatusCompleted, true},
		{"clamped low", -5, 0, domain.GoalStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var updated *domain.Goal
			mockRepo := &mocks.MockGoalRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*domain.Goal, error) {
					return &domain.Goal{ID: id, UserID: "user-1", Status: domain.GoalStatusActive}, nil
				},
				UpdateFunc: func(ctx context.Context, goal *domain.Goal) error {
					updated = goal
					return nil
				},
			}
			service := NewService(mockRepo, newTestLogger())

			// Act
			goal, err := service.UpdateGoalProgress(context.Background(), "goal-1", "user-1", tt.requested)

			// Assert
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if updated == nil {
				t.Fatal("expected repository update")
			}
			if goal.Progress.Percentage != tt.percentage || goal.Progress.CurrentValue != tt.percentage {
				t.Errorf("expected %d, got %+v", tt.percentage, goal.Progress)
			}
			if goal.Status != tt.status {
				t.Errorf("expected status %s, got %s", tt.status, goal.Status)
			}
			if (goal.CompletedAt != nil) != tt.completed {
				t.Errorf("expected completedAt set=%v, got %v", tt.completed, goal.CompletedAt)
			}
		})
	}
}

func TestUpdateGoalProgress_NotFound(t *testing.T) {
	service := NewService(&mocks.MockGoalRepository{}, newTestLogger())

	_, err := service.UpdateGoalProgress(context.Background(), "missing", "user-1", 10)

	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetActiveGoals_Filter(t *testing.T) {
	var got domain.GoalFilter
	mockRepo := &mocks.MockGoalRepository{
		FindByUserFunc: func(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error) {
			got = filter
			return []domain.Goal{}, nil
		},
	}
	service := NewService(mockRepo, newTestLogger())

	if _, err := service.GetActiveGoals(context.Background(), "user-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Status != domain.GoalStatusActive {
		t.Errorf("expected active filter, got %+v", got)
	}
}
