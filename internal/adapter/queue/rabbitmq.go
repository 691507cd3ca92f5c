package queue

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	exchangeKind   = "fanout"
	reconnectDelay = 5 * time.Second
)

// RabbitMQQueue maps each subject to a fanout exchange. Subscribers get an
// exclusive auto-delete queue, so events published while nobody listens
// are dropped, matching NATS core semantics.
type RabbitMQQueue struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	url      string
	mu       sync.RWMutex
	log      *zap.Logger
	handlers map[string]func([]byte) error
	closed   bool
}

func NewRabbitMQQueue(url string, log *zap.Logger) (*RabbitMQQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	q := &RabbitMQQueue{
		conn:     conn,
		channel:  ch,
		url:      url,
		log:      log,
		handlers: make(map[string]func([]byte) error),
	}

	go q.monitorConnection()

	log.Info("Connected to RabbitMQ")
	return q, nil
}

func (q *RabbitMQQueue) Publish(subject string, data []byte) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}

	if err := declareExchange(q.channel, subject); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		Body:         data,
		Timestamp:    time.Now().UTC(),
	}
	if err := q.channel.Publish(subject, "", false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish to %s: %w", subject, err)
	}
	return nil
}

func declareExchange(ch *amqp.Channel, subject string) error {
	if err := ch.ExchangeDeclare(subject, exchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declare exchange %s: %w", subject, err)
	}
	return nil
}

func (q *RabbitMQQueue) Subscribe(subject string, handler func(data []byte) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}
	if err := q.consume(q.channel, subject, handler); err != nil {
		return err
	}
	q.handlers[subject] = handler

	q.log.Info("Subscribed to RabbitMQ exchange", zap.String("exchange", subject))
	return nil
}

func (q *RabbitMQQueue) consume(ch *amqp.Channel, subject string, handler func([]byte) error) error {
	if err := declareExchange(ch, subject); err != nil {
		return err
	}

	// server-named, exclusive, deleted with the connection
	inbox, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: declare queue for %s: %w", subject, err)
	}
	if err := ch.QueueBind(inbox.Name, "", subject, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: bind %s: %w", subject, err)
	}

	deliveries, err := ch.Consume(inbox.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume %s: %w", subject, err)
	}

	go q.deliver(subject, deliveries, handler)
	return nil
}

func (q *RabbitMQQueue) deliver(subject string, deliveries <-chan amqp.Delivery, handler func([]byte) error) {
	for d := range deliveries {
		if err := handler(d.Body); err != nil {
			q.log.Warn("Action event handler failed",
				zap.String("exchange", subject),
				zap.Error(err),
			)
		}
	}
}

func (q *RabbitMQQueue) IsConnected() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.conn != nil && !q.conn.IsClosed()
}

func (q *RabbitMQQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// monitorConnection redials after a broker-side close and replays every
// subscription on the new channel. It exits once Close has been called.
func (q *RabbitMQQueue) monitorConnection() {
	for {
		q.mu.RLock()
		conn := q.conn
		q.mu.RUnlock()

		reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || reason == nil {
			return
		}
		q.log.Warn("RabbitMQ connection lost, reconnecting", zap.String("reason", reason.Reason))

		for !q.reconnect() {
			if q.isClosed() {
				return
			}
		}
		if q.isClosed() {
			return
		}
	}
}

func (q *RabbitMQQueue) isClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// reconnect makes one dial attempt. It reports true when the queue is
// usable again or has been closed in the meantime.
func (q *RabbitMQQueue) reconnect() bool {
	time.Sleep(reconnectDelay)

	conn, err := amqp.Dial(q.url)
	if err != nil {
		q.log.Error("RabbitMQ redial failed", zap.Error(err))
		return false
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		conn.Close()
		return true
	}
	q.conn, q.channel = conn, ch
	for subject, handler := range q.handlers {
		if err := q.consume(ch, subject, handler); err != nil {
			q.log.Error("Failed to resubscribe", zap.String("exchange", subject), zap.Error(err))
		}
	}
	q.log.Info("Reconnected to RabbitMQ", zap.Int("subscriptions", len(q.handlers)))
	return true
}
