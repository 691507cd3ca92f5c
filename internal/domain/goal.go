package domain

import (
	"time"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

type GoalProgress struct {
	CurrentValue int       `json:"currentValue"`
	TargetValue  int       `json:"targetValue"`
	Unit         string    `json:"unit"`
	Percentage   int       `json:"percentage"` // 0-100
	LastUpdated  time.Time `json:"lastUpdated"`
}

type Goal struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	UserID      string       `json:"userId" gorm:"index"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category" gorm:"index"`
	Tags        []string     `json:"tags" gorm:"serializer:json;type:text"`
	Status      GoalStatus   `json:"status" gorm:"index"`
	Priority    string       `json:"priority"` // low, medium, high, critical
	Progress    GoalProgress `json:"progress" gorm:"embedded;embeddedPrefix:progress_"`
	StartDate   time.Time    `json:"startDate"`
	DueDate     time.Time    `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Source      string       `json:"source"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CreateGoalInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	StartDate   time.Time `json:"startDate"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority,omitempty"`
	Source      string    `json:"source,omitempty"`
}

type GoalPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Status      *GoalStatus `json:"status,omitempty"`
	Priority    *string     `json:"priority,omitempty"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
}

type GoalFilter struct {
	Status   GoalStatus
	Category string
	Priority string
}
