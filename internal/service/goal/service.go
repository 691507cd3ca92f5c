package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type Service struct {
	repo ports.GoalRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo ports.GoalRepository, log *zap.Logger) ports.GoalService {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) CreateGoal(ctx context.Context, userID string, input domain.CreateGoalInput) (*domain.Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	now := s.now()
	start := input.StartDate
	if start.IsZero() {
		start = now
	}
	if !input.DueDate.IsZero() && input.DueDate.Before(start) {
		return nil, fmt.Errorf("%w: due date precedes start date", domain.ErrInvalidInput)
	}
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	source := input.Source
	if source == "" {
		source = "manual"
	}

	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Category:    input.Category,
		Tags:        tags,
		Status:      domain.GoalStatusActive,
		Priority:    priority,
		Progress: domain.GoalProgress{
			TargetValue: 100,
			Unit:        "percentage",
			LastUpdated: now,
		},
		StartDate: start,
		DueDate:   input.DueDate,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, goal); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}

	s.log.Debug("Goal created", zap.String("goal_id", goal.ID), zap.String("user_id", userID))
	return goal, nil
}

func (s *Service) GetGoals(ctx context.Context, userID string, filter domain.GoalFilter) ([]domain.Goal, error) {
	return s.repo.FindByUser(ctx, userID, filter)
}

func (s *Service) GetActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.repo.FindByUser(ctx, userID, domain.GoalFilter{Status: domain.GoalStatusActive})
}

func (s *Service) GetGoal(ctx context.Context, goalID, userID string) (*domain.Goal, error) {
	goal, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrNotFound
	}
	if goal.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	return goal, nil
}

func (s *Service) UpdateGoal(ctx context.Context, goalID, userID string, patch domain.GoalPatch) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		goal.Title = title
	}
	if patch.Description != nil {
		goal.Description = *patch.Description
	}
	if patch.Category != nil {
		goal.Category = *patch.Category
	}
	if patch.Tags != nil {
		goal.Tags = patch.Tags
	}
	if patch.Priority != nil {
		goal.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		goal.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.GoalStatusActive, domain.GoalStatusCompleted, domain.GoalStatusPaused, domain.GoalStatusCancelled:
			goal.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status)
		}
		if goal.Status == domain.GoalStatusCompleted && goal.CompletedAt == nil {
			t := s.now()
			goal.CompletedAt = &t
		}
	}
	goal.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return goal, nil
}

// UpdateGoalProgress sets the completion percentage, clamped to [0,100].
// Reaching 100 completes the goal.
func (s *Service) UpdateGoalProgress(ctx context.Context, goalID, userID string, percentage int) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	now := s.now()
	goal.Progress.Percentage = percentage
	goal.Progress.CurrentValue = percentage
	goal.Progress.LastUpdated = now
	goal.UpdatedAt = now
	if percentage >= 100 {
		goal.Status = domain.GoalStatusCompleted
		goal.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal progress: %w", err)
	}

	s.log.Debug("Goal progress updated",
		zap.String("goal_id", goalID),
		zap.Int("percentage", percentage),
	)
	return goal, nil
}

func (s *Service) DeleteGoal(ctx context.Context, goalID, userID string) error {
	if _, err := s.GetGoal(ctx, goalID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, goalID)
}
