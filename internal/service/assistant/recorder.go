package assistant

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/observability/telemetry"
	"github.com/lyra-ai/lyra-backend/internal/ports"
)

// ActionRecorder consumes ActionEvents and records them in metrics and logs.
type ActionRecorder struct {
	log *zap.Logger
}

func NewActionRecorder(log *zap.Logger) *ActionRecorder {
	return &ActionRecorder{log: log}
}

// Start subscribes the recorder to ActionsSubject.
func (r *ActionRecorder) Start(sub ports.EventSubscriber) error {
	if err := sub.Subscribe(ActionsSubject, r.Handle); err != nil {
		return fmt.Errorf("subscribe %s: %w", ActionsSubject, err)
	}
	r.log.Info("Action recorder subscribed", zap.String("subject", ActionsSubject))
	return nil
}

func (r *ActionRecorder) Handle(data []byte) error {
	var event domain.ActionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode action event: %w", err)
	}

	for _, a := range event.Actions {
		telemetry.AssistantActionsTotal.WithLabelValues(string(a.Type), string(a.Status)).Inc()
		r.log.Info("Assistant action recorded",
			zap.String("user_id", event.UserID),
			zap.String("intent", string(event.Intent)),
			zap.String("action_id", a.ID),
			zap.String("type", string(a.Type)),
			zap.String("target", a.Target.EntityType+"/"+a.Target.EntityID),
			zap.Time("occurred_at", event.OccurredAt),
		)
	}
	return nil
}
