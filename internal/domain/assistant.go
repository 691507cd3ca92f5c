package domain

import (
	"time"
)

// Intent is the closed set of things the assistant understands.
type Intent string

const (
	IntentCreateTask         Intent = "create_task"
	IntentCreateGoal         Intent = "create_goal"
	IntentCreateNote         Intent = "create_note"
	IntentCompleteTask       Intent = "complete_task"
	IntentUpdateGoalProgress Intent = "update_goal_progress"
	IntentCheckPriorities    Intent = "check_priorities"
	IntentCheckProgress      Intent = "check_progress"
	IntentGeneral            Intent = "general"
)

type EntityType string

const (
	EntityTaskTitle     EntityType = "task_title"
	EntityGoalTitle     EntityType = "goal_title"
	EntityNoteContent   EntityType = "note_content"
	EntityProgressValue EntityType = "progress_value"
)

// Entity is a slot value captured from an utterance. Value is a string for
// titles and content, an int for progress_value.
type Entity struct {
	Type       EntityType `json:"type"`
	Value      any        `json:"value"`
	Confidence float64    `json:"confidence"`
}

func (e Entity) String() string {
	s, _ := e.Value.(string)
	return s
}

func (e Entity) Int() (int, bool) {
	n, ok := e.Value.(int)
	return n, ok
}

// Command is the classifier output. It is never mutated after classification.
type Command struct {
	Intent     Intent   `json:"intent"`
	Entities   []Entity `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// Entity returns the first entity of the given type.
func (c Command) Entity(t EntityType) (Entity, bool) {
	for _, e := range c.Entities {
		if e.Type == t {
			return e, true
		}
	}
	return Entity{}, false
}

type ActionType string

const (
	ActionTaskCreated ActionType = "task-created"
	ActionGoalSet     ActionType = "goal-set"
	ActionNoteCreated ActionType = "note-created"
	ActionCustom      ActionType = "custom"
)

type ActionStatus string

const (
	ActionStatusPending   ActionStatus = "pending"
	ActionStatusCompleted ActionStatus = "completed"
	ActionStatusFailed    ActionStatus = "failed"
	ActionStatusCancelled ActionStatus = "cancelled"
)

type ActionTarget struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId,omitempty"`
}

// Action records one side effect performed on behalf of a Command.
type Action struct {
	ID          string         `json:"id"`
	Type        ActionType     `json:"type"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
	Status      ActionStatus   `json:"status"`
	Target      ActionTarget   `json:"target"`
	Result      any            `json:"result,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ExecutedBy  string         `json:"executedBy"`
}

// Outcome names the terminal case a dispatch ended in.
type Outcome string

const (
	OutcomeResolved         Outcome = "resolved"
	OutcomeUnrecognized     Outcome = "unrecognized"
	OutcomeEntityMissing    Outcome = "entity_missing"
	OutcomeNoMatch          Outcome = "no_match"
	OutcomeStoreUnavailable Outcome = "store_unavailable"
)

type AssistantResponse struct {
	Text        string   `json:"text"`
	Actions     []Action `json:"actions"`
	Suggestions []string `json:"suggestions"`
	Confidence  float64  `json:"confidence"`
	Intent      Intent   `json:"intent"`
	Outcome     Outcome  `json:"outcome"`
}

type UserInsights struct {
	Priorities  []string `json:"priorities"`
	Suggestions []string `json:"suggestions"`
	Progress    int      `json:"progress"`
}

type DailySummary struct {
	TasksCompleted  int      `json:"tasksCompleted"`
	TasksCreated    int      `json:"tasksCreated"`
	GoalsProgress   int      `json:"goalsProgress"`
	NotesTaken      int      `json:"notesTaken"`
	Recommendations []string `json:"recommendations"`
}

// ActionEvent is published after a dispatch that produced actions.
type ActionEvent struct {
	UserID     string    `json:"userId"`
	Intent     Intent    `json:"intent"`
	Actions    []Action  `json:"actions"`
	OccurredAt time.Time `json:"occurredAt"`
}
