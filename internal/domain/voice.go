package domain

import (
	"time"
)

type VoiceSessionStatus string

const (
	VoiceSessionActive    VoiceSessionStatus = "active"
	VoiceSessionCompleted VoiceSessionStatus = "completed"
	VoiceSessionCancelled VoiceSessionStatus = "cancelled"
)

// Transcription is a persisted speech-to-text result.
type Transcription struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"userId" gorm:"index"`
	SessionID  *string   `json:"sessionId,omitempty" gorm:"index"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Language   string    `json:"language"`
	Duration   float64   `json:"duration"` // seconds
	CreatedAt  time.Time `json:"timestamp"`
}

type VoiceSession struct {
	ID             string             `json:"sessionId" gorm:"primaryKey"`
	UserID         string             `json:"uid" gorm:"index"`
	StartTime      time.Time          `json:"startTime"`
	EndTime        *time.Time         `json:"endTime,omitempty"`
	TotalDuration  float64            `json:"totalDuration"`
	Status         VoiceSessionStatus `json:"status"`
	Transcriptions []Transcription    `json:"transcriptions" gorm:"foreignKey:SessionID"`
}

// Transcript is what a speech-to-text provider returns.
type Transcript struct {
	Text       string
	Language   string
	Confidence float64
}

type TranscribeRequest struct {
	AudioData   string  `json:"audioData"`
	AudioFormat string  `json:"audioFormat"`
	Language    string  `json:"language,omitempty"`
	SessionID   string  `json:"sessionId,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
}

type TranscriptionResult struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Language   string    `json:"language"`
	Duration   float64   `json:"duration"`
	Timestamp  time.Time `json:"timestamp"`
}

// AudioCommandResult pairs a transcription with the assistant's answer to it.
type AudioCommandResult struct {
	Transcription *TranscriptionResult `json:"transcription"`
	Response      *AssistantResponse   `json:"response"`
}
