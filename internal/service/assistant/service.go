package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/observability/telemetry"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

// ActionsSubject is where ActionEvents are published.
const ActionsSubject = "assistant.actions"

type Service struct {
	dispatcher *Dispatcher
	tasks      ports.TaskService
	goals      ports.GoalService
	notes      ports.NoteService
	publisher  ports.EventPublisher
	tracer     trace.Tracer
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for timestamps and the daily summary window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.dispatcher.now = now
	}
}

// WithIDGenerator replaces the action ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.dispatcher.newID = newID }
}

// WithGoalHorizon sets how far ahead voice-created goals are due.
func WithGoalHorizon(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.dispatcher.goalHorizon = d
		}
	}
}

// WithPublisher enables ActionEvent publishing.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(
	tasks ports.TaskService,
	goals ports.GoalService,
	notes ports.NoteService,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		dispatcher: NewDispatcher(tasks, goals, notes, logger),
		tasks:      tasks,
		goals:      goals,
		notes:      notes,
		tracer:     otel.Tracer("github.com/lyra-ai/lyra-backend/internal/service/assistant"),
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessVoiceInput classifies the transcription and dispatches it. Store
// failures surface as a reply, not an error; only blank input is rejected.
func (s *Service) ProcessVoiceInput(ctx context.Context, userID, transcription string, assistantCtx map[string]any) (*domain.AssistantResponse, error) {
	if userID == "" || strings.TrimSpace(transcription) == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, span := s.tracer.Start(ctx, "assistant.ProcessVoiceInput")
	defer span.End()

	start := time.Now()
	cmd := Classify(transcription)
	resp := s.dispatcher.Dispatch(ctx, userID, cmd, assistantCtx)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("assistant.intent", string(cmd.Intent)),
		attribute.String("assistant.outcome", string(resp.Outcome)),
		attribute.Int("assistant.actions", len(resp.Actions)),
	)
	telemetry.VoiceCommandsTotal.WithLabelValues(string(cmd.Intent), string(resp.Outcome)).Inc()
	telemetry.VoiceCommandLatency.Observe(elapsed.Seconds())

	s.logger.Info("Voice input processed",
		zap.String("user_id", userID),
		zap.String("intent", string(cmd.Intent)),
		zap.String("outcome", string(resp.Outcome)),
		zap.Float64("confidence", resp.Confidence),
		zap.Int("actions", len(resp.Actions)),
		zap.Duration("elapsed", elapsed),
	)

	if len(resp.Actions) > 0 {
		s.publishActions(userID, cmd.Intent, resp.Actions)
	}

	return resp, nil
}

// publishActions is best effort; a queue outage never changes the reply.
func (s *Service) publishActions(userID string, intent domain.Intent, actions []domain.Action) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(domain.ActionEvent{
		UserID:     userID,
		Intent:     intent,
		Actions:    actions,
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("Failed to encode action event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ActionsSubject, payload); err != nil {
		s.logger.Warn("Failed to publish action event",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
