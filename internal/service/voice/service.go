package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/observability/telemetry"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

const (
	defaultSessionLimit = 20
	maxSessionLimit     = 100
	defaultConfidence   = 0.8
	defaultLanguage     = "en"
)

var supportedFormats = map[string]bool{
	"wav":  true,
	"mp3":  true,
	"m4a":  true,
	"webm": true,
}

type Service struct {
	repo      ports.VoiceRepository
	stt       ports.SpeechToText
	assistant ports.AssistantService
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo ports.VoiceRepository, stt ports.SpeechToText, assistant ports.AssistantService, log *zap.Logger) ports.VoiceService {
	return &Service{
		repo:      repo,
		stt:       stt,
		assistant: assistant,
		log:       log,
		now:       time.Now,
	}
}

// Transcribe decodes the payload, sends it to the speech-to-text provider and
// stores the result. Storage failures are logged and do not fail the call.
func (s *Service) Transcribe(ctx context.Context, userID string, req domain.TranscribeRequest) (*domain.TranscriptionResult, error) {
	format := strings.ToLower(strings.TrimSpace(req.AudioFormat))
	if !supportedFormats[format] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedAudioFormat, req.AudioFormat)
	}

	audio, err := decodeAudio(req.AudioData)
	if err != nil {
		return nil, err
	}

	transcript, err := s.stt.Transcribe(ctx, audio, format, req.Language)
	if err != nil {
		telemetry.TranscriptionsTotal.WithLabelValues("error").Inc()
		s.log.Error("Speech-to-text failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrTranscriptionFailed, err)
	}
	telemetry.TranscriptionsTotal.WithLabelValues("ok").Inc()

	result := &domain.TranscriptionResult{
		Text:       transcript.Text,
		Confidence: transcript.Confidence,
		Language:   firstNonEmpty(transcript.Language, req.Language, defaultLanguage),
		Duration:   req.Duration,
		Timestamp:  s.now(),
	}
	if result.Confidence == 0 {
		result.Confidence = defaultConfidence
	}

	s.record(ctx, userID, req.SessionID, result)
	return result, nil
}

func (s *Service) record(ctx context.Context, userID, sessionID string, result *domain.TranscriptionResult) {
	t := &domain.Transcription{
		ID:         uuid.NewString(),
		UserID:     userID,
		Text:       result.Text,
		Confidence: result.Confidence,
		Language:   result.Language,
		Duration:   result.Duration,
		CreatedAt:  result.Timestamp,
	}
	if sessionID != "" {
		// only the caller's own sessions get the transcription and its duration
		if _, err := s.GetSession(ctx, sessionID, userID); err != nil {
			s.log.Warn("Transcription not linked to session",
				zap.String("user_id", userID),
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		} else {
			t.SessionID = &sessionID
		}
	}
	if err := s.repo.SaveTranscription(ctx, t); err != nil {
		s.log.Warn("Failed to save transcription",
			zap.String("user_id", userID),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

// ProcessAudioCommand transcribes the audio and hands the text to the assistant.
func (s *Service) ProcessAudioCommand(ctx context.Context, userID string, req domain.TranscribeRequest, assistantCtx map[string]any) (*domain.AudioCommandResult, error) {
	transcription, err := s.Transcribe(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if assistantCtx == nil {
		assistantCtx = map[string]any{}
	}
	if req.SessionID != "" {
		assistantCtx["sessionId"] = req.SessionID
	}

	resp, err := s.assistant.ProcessVoiceInput(ctx, userID, transcription.Text, assistantCtx)
	if err != nil {
		return nil, err
	}
	return &domain.AudioCommandResult{Transcription: transcription, Response: resp}, nil
}

func (s *Service) StartSession(ctx context.Context, userID string) (*domain.VoiceSession, error) {
	session := &domain.VoiceSession{
		ID:             uuid.NewString(),
		UserID:         userID,
		StartTime:      s.now(),
		Status:         domain.VoiceSessionActive,
		Transcriptions: []domain.Transcription{},
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save voice session: %w", err)
	}
	return session, nil
}

func (s *Service) EndSession(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error) {
	session, err := s.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	end := s.now()
	session.EndTime = &end
	session.Status = domain.VoiceSessionCompleted
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("end voice session: %w", err)
	}
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, sessionID, userID string) (*domain.VoiceSession, error) {
	session, err := s.repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	return session, nil
}

func (s *Service) ListSessions(ctx context.Context, userID string, limit int) ([]domain.VoiceSession, error) {
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	if limit > maxSessionLimit {
		limit = maxSessionLimit
	}
	return s.repo.FindSessionsByUser(ctx, userID, limit)
}

// decodeAudio accepts raw base64 or a data URL such as
// "data:audio/webm;base64,AAAA".
func decodeAudio(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, fmt.Errorf("%w: audio data is required", domain.ErrInvalidInput)
	}
	if strings.HasPrefix(data, "data:") {
		i := strings.Index(data, ",")
		if i < 0 {
			return nil, fmt.Errorf("%w: malformed data URL", domain.ErrInvalidInput)
		}
		data = data[i+1:]
	}
	audio, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: audio data is not base64", domain.ErrInvalidInput)
	}
	return audio, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
