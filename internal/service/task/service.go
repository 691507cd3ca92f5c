package task

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

const defaultEstimatedMinutes = 30

type Service struct {
	repo ports.TaskRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo ports.TaskRepository, log *zap.Logger) ports.TaskService {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	priority := input.Priority
	if priority == 0 {
		priority = domain.TaskPriorityMedium
	}
	if priority < domain.TaskPriorityLow || priority > domain.TaskPriorityUrgent {
		return nil, fmt.Errorf("%w: priority must be between 1 and 4", domain.ErrInvalidInput)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	estimated := input.EstimatedDuration
	if estimated <= 0 {
		estimated = defaultEstimatedMinutes
	}
	source := input.Source
	if source == "" {
		source = "manual"
	}

	now := s.now()
	task := &domain.Task{
		ID:                uuid.NewString(),
		UserID:            userID,
		Title:             title,
		Description:       input.Description,
		GoalID:            input.GoalID,
		Category:          input.Category,
		Tags:              tags,
		Status:            domain.TaskStatusTodo,
		Priority:          priority,
		DueDate:           input.DueDate,
		EstimatedDuration: estimated,
		ParentTaskID:      input.ParentTaskID,
		Source:            source,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	s.log.Debug("Task created",
		zap.String("task_id", task.ID),
		zap.String("user_id", userID),
		zap.String("source", source),
	)
	return task, nil
}

func (s *Service) GetTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	return s.repo.FindByUser(ctx, userID, filter)
}

func (s *Service) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if task.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	return task, nil
}

func (s *Service) UpdateTask(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.GetTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.GoalID != nil {
		task.GoalID = *patch.GoalID
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Tags != nil {
		task.Tags = patch.Tags
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.TaskStatusTodo, domain.TaskStatusInProgress, domain.TaskStatusDone, domain.TaskStatusArchived:
			task.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status)
		}
	}
	if patch.Priority != nil {
		if *patch.Priority < domain.TaskPriorityLow || *patch.Priority > domain.TaskPriorityUrgent {
			return nil, fmt.Errorf("%w: priority must be between 1 and 4", domain.ErrInvalidInput)
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.EstimatedDuration != nil {
		task.EstimatedDuration = *patch.EstimatedDuration
	}
	task.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, taskID, userID string) error {
	if _, err := s.GetTask(ctx, taskID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, taskID)
}

// GetOverdueTasks returns open tasks whose due date has passed.
func (s *Service) GetOverdueTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	tasks, err := s.repo.FindByUser(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	overdue := make([]domain.Task, 0)
	for i := range tasks {
		if tasks[i].IsOverdue(now) {
			overdue = append(overdue, tasks[i])
		}
	}
	return overdue, nil
}
