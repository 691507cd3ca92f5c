package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrAccessDenied           = errors.New("access denied")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnsupportedAudioFormat = errors.New("unsupported audio format")
	ErrTranscriptionFailed    = errors.New("transcription failed")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid token")
	ErrEmailTaken             = errors.New("email already registered")
)
