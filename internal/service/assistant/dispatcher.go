package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

const (
	executedBy          = "lyra-assistant"
	sourceVoice         = "voice"
	voiceTag            = "voice-created"
	confidenceFailure   = 0.3
	defaultGoalHorizon  = 30 * 24 * time.Hour
	noteTitleLimit      = 50
	noteDescriptionSize = 30
)

var (
	generalSuggestions = []string{"Create a task", "Set a goal", "Take a note", "Check priorities"}
	failureSuggestions = []string{"Try again", "Rephrase your request", "Check your connection"}
	taskLookupHints    = []string{"List all tasks", "Create a new task", "Check task names"}
	goalLookupHints    = []string{"List all goals", "Create a new goal", "Check goal names"}
)

type intentHandler func(ctx context.Context, userID string, cmd domain.Command, meta map[string]any) (*domain.AssistantResponse, error)

// Dispatcher turns a classified Command into store operations and a reply.
type Dispatcher struct {
	tasks       ports.TaskService
	goals       ports.GoalService
	notes       ports.NoteService
	log         *zap.Logger
	now         func() time.Time
	newID       func() string
	goalHorizon time.Duration
	handlers    map[domain.Intent]intentHandler
}

func NewDispatcher(tasks ports.TaskService, goals ports.GoalService, notes ports.NoteService, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		tasks:       tasks,
		goals:       goals,
		notes:       notes,
		log:         log,
		now:         time.Now,
		newID:       uuid.NewString,
		goalHorizon: defaultGoalHorizon,
	}
	d.handlers = map[domain.Intent]intentHandler{
		domain.IntentCreateTask:         d.createTask,
		domain.IntentCreateGoal:         d.createGoal,
		domain.IntentCreateNote:         d.createNote,
		domain.IntentCompleteTask:       d.completeTask,
		domain.IntentUpdateGoalProgress: d.updateGoalProgress,
		domain.IntentCheckPriorities:    d.checkPriorities,
		domain.IntentCheckProgress:      d.checkProgress,
	}
	return d
}

// Dispatch always returns a response. Failures are mapped to a reply whose
// Outcome names what went wrong; they are never returned to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, cmd domain.Command, assistantCtx map[string]any) *domain.AssistantResponse {
	handler, ok := d.handlers[cmd.Intent]
	if !ok {
		return &domain.AssistantResponse{
			Text:        "I'm here to help you stay on top of your tasks, goals and notes. What would you like to do?",
			Actions:     []domain.Action{},
			Suggestions: generalSuggestions,
			Confidence:  confidenceFallback,
			Intent:      domain.IntentGeneral,
			Outcome:     domain.OutcomeUnrecognized,
		}
	}

	resp, err := handler(ctx, userID, cmd, actionMetadata(assistantCtx))
	if err != nil {
		return d.failure(cmd, err)
	}
	resp.Intent = cmd.Intent
	resp.Outcome = domain.OutcomeResolved
	if resp.Actions == nil {
		resp.Actions = []domain.Action{}
	}
	return resp
}

func (d *Dispatcher) failure(cmd domain.Command, err error) *domain.AssistantResponse {
	resp := &domain.AssistantResponse{
		Actions:    []domain.Action{},
		Confidence: cmd.Confidence,
		Intent:     cmd.Intent,
	}

	var missing *EntityMissingError
	var noMatch *NoMatchError
	switch {
	case errors.As(err, &missing):
		resp.Outcome = domain.OutcomeEntityMissing
		if cmd.Intent == domain.IntentUpdateGoalProgress {
			resp.Text = `I couldn't tell which goal to update or the new progress. Try saying "update goal" followed by the goal name and a percentage.`
			resp.Suggestions = goalLookupHints
		} else {
			resp.Text = `I couldn't tell which task you meant. Try saying "complete" followed by the task name.`
			resp.Suggestions = taskLookupHints
		}
	case errors.As(err, &noMatch):
		resp.Outcome = domain.OutcomeNoMatch
		resp.Text = fmt.Sprintf("I couldn't find a %s matching %q. Could you be more specific?", noMatch.Kind, noMatch.Query)
		if noMatch.Kind == "goal" {
			resp.Suggestions = goalLookupHints
		} else {
			resp.Suggestions = taskLookupHints
		}
	default:
		d.log.Error("Assistant dispatch failed",
			zap.String("intent", string(cmd.Intent)),
			zap.Error(err),
		)
		resp.Outcome = domain.OutcomeStoreUnavailable
		resp.Text = "I encountered an issue while working on that. Let me try a different approach."
		resp.Suggestions = failureSuggestions
		resp.Confidence = confidenceFailure
	}
	return resp
}

func (d *Dispatcher) createTask(ctx context.Context, userID string, cmd domain.Command, meta map[string]any) (*domain.AssistantResponse, error) {
	title := "New task"
	if e, ok := cmd.Entity(domain.EntityTaskTitle); ok && e.String() != "" {
		title = e.String()
	}

	task, err := d.tasks.CreateTask(ctx, userID, domain.CreateTaskInput{
		Title:       title,
		Description: "Task created via voice command",
		Category:    "general",
		Tags:        []string{voiceTag},
		Priority:    domain.TaskPriorityMedium,
		Source:      sourceVoice,
	})
	if err != nil {
		return nil, storeErr("create task", err)
	}

	return &domain.AssistantResponse{
		Text:        fmt.Sprintf("I've created a task: %q. What else would you like me to help you with?", title),
		Actions:     []domain.Action{d.action(domain.ActionTaskCreated, "Created task: "+title, "task", task.ID, task, meta)},
		Suggestions: []string{"Set a deadline", "Add more details", "Create another task"},
		Confidence:  cmd.Confidence,
	}, nil
}

func (d *Dispatcher) createGoal(ctx context.Context, userID string, cmd domain.Command, meta map[string]any) (*domain.AssistantResponse, error) {
	title := "New goal"
	if e, ok := cmd.Entity(domain.EntityGoalTitle); ok && e.String() != "" {
		title = e.String()
	}

	now := d.now()
	goal, err := d.goals.CreateGoal(ctx, userID, domain.CreateGoalInput{
		Title:       title,
		Description: "Goal set via voice command",
		Category:    "personal",
		Tags:        []string{voiceTag},
		StartDate:   now,
		DueDate:     now.Add(d.goalHorizon),
		Source:      sourceVoice,
	})
	if err != nil {
		return nil, storeErr("create goal", err)
	}

	return &domain.AssistantResponse{
		Text:        fmt.Sprintf("Great! I've set a goal: %q. This will help you stay focused. What's your next step?", title),
		Actions:     []domain.Action{d.action(domain.ActionGoalSet, "Set goal: "+title, "goal", goal.ID, goal, meta)},
		Suggestions: []string{"Break it into smaller tasks", "Set milestones", "Track progress"},
		Confidence:  cmd.Confidence,
	}, nil
}

func (d *Dispatcher) createNote(ctx context.Context, userID string, cmd domain.Command, meta map[string]any) (*domain.AssistantResponse, error) {
	content := "Important information"
	if e, ok := cmd.Entity(domain.EntityNoteContent); ok && e.String() != "" {
		content = e.String()
	}

	note, err := d.notes.CreateNote(ctx, userID, domain.CreateNoteInput{
		Title:    preview(content, noteTitleLimit),
		Content:  domain.NoteContent{Text: content},
		Category: "general",
		Tags:     []string{voiceTag},
		Source:   sourceVoice,
	})
	if err != nil {
		return nil, storeErr("create note", err)
	}

	return &domain.AssistantResponse{
		Text:        "I've saved that note for you. Is there anything else you'd like me to remember?",
		Actions:     []domain.Action{d.action(domain.ActionNoteCreated, "Created note: "+preview(content, noteDescriptionSize), "note", note.ID, note, meta)},
		Suggestions: []string{"Add more details", "Create a task from this", "Set a reminder"},
		Confidence:  cmd.Confidence,
	}, nil
}

func (d *Dispatcher) completeTask(ctx context.Context, userID string, cmd domain.Command, meta map[string]any) (*domain.AssistantResponse, error) {
	e, ok := cmd.Entity(domain.EntityTaskTitle)
	if !ok || e.String() == "" {
		return nil, &EntityMissingError{Intent: cmd.Intent, Missing: []domain.EntityType{domain.EntityTaskTitle}}
	}
	query := e.String()

	tasks, err := d.tasks.GetTasks(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return nil, storeErr("list tasks", err)
	}

	match, found := bestMatch(tasks, query, func(t domain.Task) (string, string) { return t.ID, t.Title })
	if !found {
		return nil, &NoMatchError{Kind: "task", Query: query}
	}

	done := domain.TaskStatusDone
	if _, err := d.tasks.UpdateTask(ctx, match.ID, userID, domain.TaskPatch{Status: &done}); err != nil {
		return nil, storeErr("complete task", err)
	}

	result := map[string]any{"status": string(domain.ActionStatusCompleted)}
	return &domain.AssistantResponse{
		Text:        fmt.Sprintf("Great job! I've marked %q as completed. What's next on your list?", match.Title),
		Actions:     []domain.Action{d.action(domain.ActionCustom, "Completed task: "+match.Title, "task", match.ID, result, meta)},
		Suggestions: []string{"Check your progress", "Create a new task", "Review your goals"},
		Confidence:  cmd.Confidence,
	}, nil
}

func (d *Dispatcher) updateGoalProgress(ctx context.Context, userID string, cmd domain.Command, meta map[string]any) (*domain.AssistantResponse, error) {
	var missing []domain.EntityType
	titleEntity, ok := cmd.Entity(domain.EntityGoalTitle)
	if !ok || titleEntity.String() == "" {
		missing = append(missing, domain.EntityGoalTitle)
	}
	valueEntity, ok := cmd.Entity(domain.EntityProgressValue)
	requested, isInt := valueEntity.Int()
	if !ok || !isInt {
		missing = append(missing, domain.EntityProgressValue)
	}
	if len(missing) > 0 {
		return nil, &EntityMissingError{Intent: cmd.Intent, Missing: missing}
	}
	query := titleEntity.String()

	goals, err := d.goals.GetGoals(ctx, userID, domain.GoalFilter{})
	if err != nil {
		return nil, storeErr("list goals", err)
	}

	match, found := bestMatch(goals, query, func(g domain.Goal) (string, string) { return g.ID, g.Title })
	if !found {
		return nil, &NoMatchError{Kind: "goal", Query: query}
	}

	applied := clampPercent(requested)
	if _, err := d.goals.UpdateGoalProgress(ctx, match.ID, userID, applied); err != nil {
		return nil, storeErr("update goal progress", err)
	}

	meta["requestedProgress"] = requested
	meta["appliedProgress"] = applied
	result := map[string]any{"progress": applied}

	return &domain.AssistantResponse{
		Text:        fmt.Sprintf("Perfect! I've updated %q to %d%% progress. Keep up the great work!", match.Title, applied),
		Actions:     []domain.Action{d.action(domain.ActionCustom, fmt.Sprintf("Updated goal progress: %s to %d%%", match.Title, applied), "goal", match.ID, result, meta)},
		Suggestions: []string{"Check other goals", "Create related tasks", "Set next milestone"},
		Confidence:  cmd.Confidence,
	}, nil
}

func (d *Dispatcher) checkPriorities(ctx context.Context, userID string, cmd domain.Command, _ map[string]any) (*domain.AssistantResponse, error) {
	tasks, err := d.tasks.GetTasks(ctx, userID, domain.TaskFilter{Priority: domain.TaskPriorityHigh})
	if err != nil {
		return nil, storeErr("list high-priority tasks", err)
	}
	goals, err := d.goals.GetGoals(ctx, userID, domain.GoalFilter{Status: domain.GoalStatusActive})
	if err != nil {
		return nil, storeErr("list active goals", err)
	}

	return &domain.AssistantResponse{
		Text:        fmt.Sprintf("You have %d high-priority tasks and %d active goals. Would you like me to list them?", len(tasks), len(goals)),
		Suggestions: []string{"Show high-priority tasks", "Review goals", "Create new priority"},
		Confidence:  cmd.Confidence,
	}, nil
}

func (d *Dispatcher) checkProgress(ctx context.Context, userID string, cmd domain.Command, _ map[string]any) (*domain.AssistantResponse, error) {
	tasks, err := d.tasks.GetTasks(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return nil, storeErr("list tasks", err)
	}

	completed := countDone(tasks)
	return &domain.AssistantResponse{
		Text:        fmt.Sprintf("You've completed %d out of %d tasks. That's %d%% progress! Keep going!", completed, len(tasks), percentOf(completed, len(tasks))),
		Suggestions: []string{"Review completed tasks", "Set new goals", "Plan next steps"},
		Confidence:  cmd.Confidence,
	}, nil
}

func (d *Dispatcher) action(t domain.ActionType, description, entityType, entityID string, result any, meta map[string]any) domain.Action {
	return domain.Action{
		ID:          d.newID(),
		Type:        t,
		Description: description,
		Timestamp:   d.now(),
		Status:      domain.ActionStatusCompleted,
		Target:      domain.ActionTarget{EntityType: entityType, EntityID: entityID},
		Result:      result,
		Metadata:    meta,
		ExecutedBy:  executedBy,
	}
}

func actionMetadata(assistantCtx map[string]any) map[string]any {
	meta := map[string]any{"source": "voice-command"}
	if sid, ok := assistantCtx["sessionId"].(string); ok && sid != "" {
		meta["sessionId"] = sid
	}
	return meta
}

// bestMatch finds the records whose title contains query, case-insensitively.
// When several match, the one with the lexicographically smallest ID wins so
// the choice does not depend on store ordering.
func bestMatch[T any](items []T, query string, key func(T) (id, title string)) (T, bool) {
	q := strings.ToLower(query)
	var candidates []T
	for _, it := range items {
		_, title := key(it)
		if strings.Contains(strings.ToLower(title), q) {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		var zero T
		return zero, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, _ := key(candidates[i])
		b, _ := key(candidates[j])
		return a < b
	})
	return candidates[0], true
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// preview shortens s to at most limit runes, marking the cut with "...".
func preview(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}
