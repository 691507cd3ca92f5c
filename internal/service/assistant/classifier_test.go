package assistant

import (
	"testing"

	"github.com/lyra-ai/lyra-backend/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		utterance  string
		intent     domain.Intent
		confidence float64
		entities   []domain.Entity
	}{
		{
			name:       "create task with title",
			utterance:  "Create task buy groceries",
			intent:     domain.IntentCreateTask,
			confidence: 0.9,
			entities:   []domain.Entity{{Type: domain.EntityTaskTitle, Value: "buy groceries", Confidence: 0.9}},
		},
		{
			name:       "add task strips leading to",
			utterance:  "add task to call mom",
			intent:     domain.IntentCreateTask,
			confidence: 0.9,
			entities:   []domain.Entity{{Type: domain.EntityTaskTitle, Value: "call mom", Confidence: 0.9}},
		},
		{
			name:       "create task without title",
			utterance:  "create task",
			intent:     domain.IntentCreateTask,
			confidence: 0.9,
		},
		{
			name:       "create goal",
			utterance:  "Set goal run a marathon",
			intent:     domain.IntentCreateGoal,
			confidence: 0.9,
			entities:   []domain.Entity{{Type: domain.EntityGoalTitle, Value: "run a marathon", Confidence: 0.9}},
		},
		{
			name:       "take note about",
			utterance:  "take note about the quarterly review",
			intent:     domain.IntentCreateNote,
			confidence: 0.9,
			entities:   []domain.Entity{{Type: domain.EntityNoteContent, Value: "the quarterly review", Confidence: 0.9}},
		},
		{
			name:       "remember triggers note without content",
			utterance:  "remember to buy milk",
			intent:     domain.IntentCreateNote,
			confidence: 0.9,
		},
		{
			name:       "check priorities",
			utterance:  "What should I focus on today?",
			intent:     domain.IntentCheckPriorities,
			confidence: 0.8,
		},
		{
			name:       "check progress",
			utterance:  "How am I doing",
			intent:     domain.IntentCheckProgress,
			confidence: 0.8,
		},
		{
			name:       "complete task",
			utterance:  "complete buy groceries",
			intent:     domain.IntentCompleteTask,
			confidence: 0.8,
			entities:   []domain.Entity{{Type: domain.EntityTaskTitle, Value: "buy groceries", Confidence: 0.8}},
		},
		{
			name:       "done keyword captures the rest",
			utterance:  "I'm done with laundry",
			intent:     domain.IntentCompleteTask,
			confidence: 0.8,
			entities:   []domain.Entity{{Type: domain.EntityTaskTitle, Value: "with laundry", Confidence: 0.8}},
		},
		{
			name:       "update goal progress",
			utterance:  "Update goal marathon to 50%",
			intent:     domain.IntentUpdateGoalProgress,
			confidence: 0.8,
			entities: []domain.Entity{
				{Type: domain.EntityGoalTitle, Value: "marathon", Confidence: 0.8},
				{Type: domain.EntityProgressValue, Value: 50, Confidence: 0.9},
			},
		},
		{
			name:       "update goal without percentage",
			utterance:  "update goal marathon",
			intent:     domain.IntentUpdateGoalProgress,
			confidence: 0.8,
		},
		{
			name:       "creation wins over completion",
			utterance:  "create task done",
			intent:     domain.IntentCreateTask,
			confidence: 0.9,
			entities:   []domain.Entity{{Type: domain.EntityTaskTitle, Value: "done", Confidence: 0.9}},
		},
		{
			name:       "progress keyword shadows goal progress",
			utterance:  "goal progress marathon at 40%",
			intent:     domain.IntentCheckProgress,
			confidence: 0.8,
		},
		{
			name:       "fallback",
			utterance:  "tell me a joke",
			intent:     domain.IntentGeneral,
			confidence: 0.6,
		},
		{
			name:       "empty utterance",
			utterance:  "",
			intent:     domain.IntentGeneral,
			confidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			cmd := Classify(tt.utterance)

			// Assert
			if cmd.Intent != tt.intent {
				t.Fatalf("expected intent %s, got %s", tt.intent, cmd.Intent)
			}
			if cmd.Confidence != tt.confidence {
				t.Errorf("expected confidence %v, got %v", tt.confidence, cmd.Confidence)
			}
			if cmd.Entities == nil {
				t.Fatal("expected non-nil entities slice")
			}
			if len(cmd.Entities) != len(tt.entities) {
				t.Fatalf("expected %d entities, got %d (%v)", len(tt.entities), len(cmd.Entities), cmd.Entities)
			}
			for i, want := range tt.entities {
				got := cmd.Entities[i]
				if got.Type != want.Type || got.Value != want.Value || got.Confidence != want.Confidence {
					t.Errorf("entity %d: expected %+v, got %+v", i, want, got)
				}
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("update goal reading to 120%")
	for i := 0; i < 10; i++ {
		again := Classify("update goal reading to 120%")
		if again.Intent != first.Intent || len(again.Entities) != len(first.Entities) {
			t.Fatalf("classification changed between calls: %+v vs %+v", first, again)
		}
	}
	if v, ok := first.Entities[1].Int(); !ok || v != 120 {
		t.Errorf("expected raw progress 120, got %v", first.Entities[1].Value)
	}
}
