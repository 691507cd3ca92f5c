package assistant

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

const recentNotesWindow = 5

var (
	insightSuggestions = []string{
		"Focus on high-priority tasks first",
		"Review your goals weekly",
		"Take notes during important conversations",
	}
	summaryRecommendations = []string{
		"Review your completed tasks",
		"Plan tomorrow's priorities",
		"Update goal progress",
		"Reflect on your achievements",
	}
)

// GetUserInsights reports open high-priority work and overall completion.
func (s *Service) GetUserInsights(ctx context.Context, userID string) (*domain.UserInsights, error) {
	tasks, err := s.tasks.GetTasks(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("get user insights: %w", err)
	}
	goals, err := s.goals.GetGoals(ctx, userID, domain.GoalFilter{})
	if err != nil {
		return nil, fmt.Errorf("get user insights: %w", err)
	}
	notes, err := s.notes.GetNotes(ctx, userID, domain.NoteFilter{})
	if err != nil {
		return nil, fmt.Errorf("get user insights: %w", err)
	}

	highPriority := 0
	for _, t := range tasks {
		if t.Priority >= domain.TaskPriorityHigh {
			highPriority++
		}
	}
	activeGoals := 0
	for _, g := range goals {
		if g.Status == domain.GoalStatusActive {
			activeGoals++
		}
	}
	recentNotes := len(notes)
	if recentNotes > recentNotesWindow {
		recentNotes = recentNotesWindow
	}

	return &domain.UserInsights{
		Priorities: []string{
			fmt.Sprintf("You have %d high-priority tasks", highPriority),
			fmt.Sprintf("You're working on %d active goals", activeGoals),
			fmt.Sprintf("You've taken %d recent notes", recentNotes),
		},
		Suggestions: insightSuggestions,
		Progress:    percentOf(countDone(tasks), len(tasks)),
	}, nil
}

// GetDailySummary counts activity since local midnight.
func (s *Service) GetDailySummary(ctx context.Context, userID string) (*domain.DailySummary, error) {
	tasks, err := s.tasks.GetTasks(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("get daily summary: %w", err)
	}
	goals, err := s.goals.GetGoals(ctx, userID, domain.GoalFilter{})
	if err != nil {
		return nil, fmt.Errorf("get daily summary: %w", err)
	}
	notes, err := s.notes.GetNotes(ctx, userID, domain.NoteFilter{})
	if err != nil {
		return nil, fmt.Errorf("get daily summary: %w", err)
	}

	today := startOfDay(s.now())
	summary := &domain.DailySummary{Recommendations: summaryRecommendations}

	for _, t := range tasks {
		if t.Status == domain.TaskStatusDone && !t.UpdatedAt.Before(today) {
			summary.TasksCompleted++
		}
		if !t.CreatedAt.Before(today) {
			summary.TasksCreated++
		}
	}
	for _, g := range goals {
		if g.Status == domain.GoalStatusActive && !g.Progress.LastUpdated.Before(today) {
			summary.GoalsProgress++
		}
	}
	for _, n := range notes {
		if !n.CreatedAt.Before(today) {
			summary.NotesTaken++
		}
	}
	return summary, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func countDone(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == domain.TaskStatusDone {
			n++
		}
	}
	return n
}

// percentOf rounds part/total to a whole percentage; an empty total is 0%.
func percentOf(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
