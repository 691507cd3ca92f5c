package domain

import (
	"time"
)

type NoteContent struct {
	Text     string `json:"text"`
	HTML     string `json:"html,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

type Note struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	UserID      string      `json:"userId" gorm:"index"`
	Title       string      `json:"title"`
	Content     NoteContent `json:"content" gorm:"embedded;embeddedPrefix:content_"`
	Category    string      `json:"category" gorm:"index"`
	Type        string      `json:"type"` // personal, work, meeting, idea
	Tags        []string    `json:"tags" gorm:"serializer:json;type:text"`
	LinkedGoals []string    `json:"linkedGoals" gorm:"serializer:json;type:text"`
	LinkedTasks []string    `json:"linkedTasks" gorm:"serializer:json;type:text"`
	Source      string      `json:"source"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type CreateNoteInput struct {
	Title       string      `json:"title"`
	Content     NoteContent `json:"content"`
	Category    string      `json:"category,omitempty"`
	Type        string      `json:"type,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	LinkedGoals []string    `json:"linkedGoals,omitempty"`
	LinkedTasks []string    `json:"linkedTasks,omitempty"`
	Source      string      `json:"source,omitempty"`
}

type NotePatch struct {
	Title    *string      `json:"title,omitempty"`
	Content  *NoteContent `json:"content,omitempty"`
	Category *string      `json:"category,omitempty"`
	Type     *string      `json:"type,omitempty"`
	Tags     []string     `json:"tags,omitempty"`
}

type NoteFilter struct {
	Category string
	Tag      string
}
