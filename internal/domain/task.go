package domain

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusArchived   TaskStatus = "archived"
)

// TaskPriority is ordered: higher values are more pressing.
type TaskPriority int

const (
	TaskPriorityLow    TaskPriority = 1
	TaskPriorityMedium TaskPriority = 2
	TaskPriorityHigh   TaskPriority = 3
	TaskPriorityUrgent TaskPriority = 4
)

type Task struct {
	ID                string       `json:"id" gorm:"primaryKey"`
	UserID            string       `json:"userId" gorm:"index"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	GoalID            string       `json:"goalId,omitempty" gorm:"index"`
	Category          string       `json:"category"`
	Tags              []string     `json:"tags" gorm:"serializer:json;type:text"`
	Status            TaskStatus   `json:"status" gorm:"index"`
	Priority          TaskPriority `json:"priority" gorm:"index"`
	DueDate           *time.Time   `json:"dueDate,omitempty"`
	EstimatedDuration int          `json:"estimatedDuration"` // minutes
	ParentTaskID      string       `json:"parentTaskId,omitempty"`
	Source            string       `json:"source"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// IsOverdue reports whether the task has a due date in the past and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusDone
}

type CreateTaskInput struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	GoalID            string       `json:"goalId,omitempty"`
	Category          string       `json:"category"`
	Tags              []string     `json:"tags,omitempty"`
	DueDate           *time.Time   `json:"dueDate,omitempty"`
	Priority          TaskPriority `json:"priority,omitempty"`
	EstimatedDuration int          `json:"estimatedDuration,omitempty"`
	ParentTaskID      string       `json:"parentTaskId,omitempty"`
	Source            string       `json:"source,omitempty"`
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title             *string       `json:"title,omitempty"`
	Description       *string       `json:"description,omitempty"`
	GoalID            *string       `json:"goalId,omitempty"`
	Category          *string       `json:"category,omitempty"`
	Tags              []string      `json:"tags,omitempty"`
	Status            *TaskStatus   `json:"status,omitempty"`
	Priority          *TaskPriority `json:"priority,omitempty"`
	DueDate           *time.Time    `json:"dueDate,omitempty"`
	EstimatedDuration *int          `json:"estimatedDuration,omitempty"`
}

type TaskFilter struct {
	Status   TaskStatus
	Priority TaskPriority
	Category string
	GoalID   string
}
