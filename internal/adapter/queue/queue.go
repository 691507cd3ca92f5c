package queue

import (
	"fmt"

	"go.uber.org/zap"
)

// MessageQueue is a fire-and-forget pub/sub transport.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	IsConnected() bool
	Close() error
}

// New connects the driver named by driver ("nats" or "rabbitmq").
func New(driver, natsURL, rabbitURL string, log *zap.Logger) (MessageQueue, error) {
	switch driver {
	case "nats":
		return NewNATSQueue(natsURL, log)
	case "rabbitmq":
		return NewRabbitMQQueue(rabbitURL, log)
	default:
		return nil, fmt.Errorf("unknown queue driver %q", driver)
	}
}
