package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

const (
	confidenceCreate   = 0.9
	confidenceCheck    = 0.8
	confidenceFallback = 0.6
)

// trigger is one row of the classification table. A trigger fires when the
// lower-cased utterance contains any of its phrases; extract then pulls slot
// values out with the trigger's capture pattern.
type trigger struct {
	intent     domain.Intent
	phrases    []string
	confidence float64
	extract    func(text string) []domain.Entity
}

var (
	createTaskPattern   = regexp.MustCompile(`(?:create|add|new)\s+task\s+(?:to\s+)?(.+)`)
	createGoalPattern   = regexp.MustCompile(`(?:set|create|new)\s+goal\s+(?:to\s+)?(.+)`)
	createNotePattern   = regexp.MustCompile(`(?:take|create)\s+note\s+(?:about\s+)?(.+)`)
	completeTaskPattern = regexp.MustCompile(`(?:complete|done|finished)\s+(.+)`)
	goalProgressPattern = regexp.MustCompile(`(?:update|set)\s+goal\s+(.+?)\s+(?:to|at)\s+(\d+)%`)
)

// triggers is evaluated top to bottom and the first hit wins: creation
// intents, then priority and progress checks, then completion, then goal
// progress updates. An utterance such as "create task done" is therefore a
// create_task, never a complete_task.
var triggers = []trigger{
	{
		intent:     domain.IntentCreateTask,
		phrases:    []string{"create task", "add task", "new task"},
		confidence: confidenceCreate,
		extract:    captureOne(createTaskPattern, domain.EntityTaskTitle, 0.9),
	},
	{
		intent:     domain.IntentCreateGoal,
		phrases:    []string{"set goal", "create goal", "new goal"},
		confidence: confidenceCreate,
		extract:    captureOne(createGoalPattern, domain.EntityGoalTitle, 0.9),
	},
	{
		intent:     domain.IntentCreateNote,
		phrases:    []string{"take note", "create note", "remember"},
		confidence: confidenceCreate,
		extract:    captureOne(createNotePattern, domain.EntityNoteContent, 0.9),
	},
	{
		intent:     domain.IntentCheckPriorities,
		phrases:    []string{"priority", "focus", "important"},
		confidence: confidenceCheck,
	},
	{
		intent:     domain.IntentCheckProgress,
		phrases:    []string{"progress", "how am i doing", "status"},
		confidence: confidenceCheck,
	},
	{
		intent:     domain.IntentCompleteTask,
		phrases:    []string{"complete", "done", "finished"},
		confidence: confidenceCheck,
		extract:    captureOne(completeTaskPattern, domain.EntityTaskTitle, 0.8),
	},
	{
		intent:     domain.IntentUpdateGoalProgress,
		phrases:    []string{"update goal", "goal progress"},
		confidence: confidenceCheck,
		extract:    captureGoalProgress,
	},
}

// Classify maps an utterance to a Command. It never fails: anything that no
// trigger recognises is a low-confidence general command.
func Classify(utterance string) domain.Command {
	text := strings.ToLower(utterance)

	for _, t := range triggers {
		if !containsAny(text, t.phrases) {
			continue
		}
		entities := []domain.Entity{}
		if t.extract != nil {
			entities = t.extract(text)
		}
		return domain.Command{
			Intent:     t.intent,
			Entities:   entities,
			Confidence: t.confidence,
		}
	}

	return domain.Command{
		Intent:     domain.IntentGeneral,
		Entities:   []domain.Entity{},
		Confidence: confidenceFallback,
	}
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func captureOne(re *regexp.Regexp, entityType domain.EntityType, confidence float64) func(string) []domain.Entity {
	return func(text string) []domain.Entity {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return []domain.Entity{}
		}
		value := strings.TrimSpace(m[1])
		if value == "" {
			return []domain.Entity{}
		}
		return []domain.Entity{{Type: entityType, Value: value, Confidence: confidence}}
	}
}

// captureGoalProgress needs both the goal name and a trailing NN% token.
// Without the percentage neither entity is emitted.
func captureGoalProgress(text string) []domain.Entity {
	m := goalProgressPattern.FindStringSubmatch(text)
	if m == nil {
		return []domain.Entity{}
	}
	title := strings.TrimSpace(m[1])
	value, err := strconv.Atoi(m[2])
	if title == "" || err != nil {
		return []domain.Entity{}
	}
	return []domain.Entity{
		{Type: domain.EntityGoalTitle, Value: title, Confidence: 0.8},
		{Type: domain.EntityProgressValue, Value: value, Confidence: 0.9},
	}
}
