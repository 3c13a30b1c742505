package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/logging"
	"github.com/vibedit/vibedit-orders-service/internal/metrics"
	"github.com/vibedit/vibedit-orders-service/internal/models"
)

// PaymentEventType represents the type of payment event.
type PaymentEventType string

const (
	PaymentEventCompleted PaymentEventType = "payment.completed"
	PaymentEventFailed    PaymentEventType = "payment.failed"
	PaymentEventRefunded  PaymentEventType = "payment.refunded"
)

// Outcomes recorded for each consumed payment event.
const (
	outcomeApplied = "applied"
	outcomeError   = "error"
	outcomeIgnored = "ignored"
	outcomeInvalid = "invalid"
)

// PaymentEvent represents a payment-related event.
type PaymentEvent struct {
	ID        string           `json:"id"`
	Type      PaymentEventType `json:"type"`
	PaymentID string           `json:"payment_id"`
	OrderID   string           `json:"order_id"`
	Status    string           `json:"status"`
	Reason    string           `json:"reason,omitempty"`
	Data      json.RawMessage  `json:"data,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// PaymentHandler applies payment outcomes to orders.
type PaymentHandler interface {
	PaymentCompleted(ctx context.Context, orderID, paymentID string) (*models.Order, error)
	PaymentFailed(ctx context.Context, orderID, paymentID, reason string) error
	PaymentRefunded(ctx context.Context, orderID, paymentID, reason string) (*models.Order, error)
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaConsumer consumes payment events from Kafka.
type KafkaConsumer struct {
	reader   messageReader
	payments PaymentHandler
	metrics  *metrics.Metrics
	logger   *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewKafkaConsumer creates a new Kafka-based event consumer.
func NewKafkaConsumer(cfg config.KafkaConfig, payments PaymentHandler, m *metrics.Metrics, logger *zap.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.PaymentsTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return newKafkaConsumer(reader, payments, m, logger)
}

func newKafkaConsumer(reader messageReader, payments PaymentHandler, m *metrics.Metrics, logger *zap.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader:   reader,
		payments: payments,
		metrics:  m,
		logger:   logger.Named("payment-consumer"),
		stopCh:   make(chan struct{}),
	}
}

// Start consumes events until ctx is cancelled or Stop is called.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting Kafka consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Kafka consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("Failed to read message", zap.Error(err))
				continue
			}

			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer. It is safe to call more than once.
func (c *KafkaConsumer) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stopCh)
		err = c.reader.Close()
	})
	return err
}

func (c *KafkaConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	c.logger.Debug("Received message",
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	var event PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal event", zap.Error(err))
		c.metrics.PaymentEvent("unknown", outcomeInvalid)
		return
	}

	if event.ID != "" {
		ctx = logging.WithRequestID(ctx, event.ID)
	}

	var err error
	switch event.Type {
	case PaymentEventCompleted:
		_, err = c.payments.PaymentCompleted(ctx, event.OrderID, event.PaymentID)
	case PaymentEventFailed:
		err = c.payments.PaymentFailed(ctx, event.OrderID, event.PaymentID, event.Reason)
	case PaymentEventRefunded:
		_, err = c.payments.PaymentRefunded(ctx, event.OrderID, event.PaymentID, event.Reason)
	default:
		c.logger.Debug("Ignoring unknown event type", zap.String("type", string(event.Type)))
		c.metrics.PaymentEvent(string(event.Type), outcomeIgnored)
		return
	}

	if err != nil {
		c.logger.Error("Failed to apply payment event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
		c.metrics.PaymentEvent(string(event.Type), outcomeError)
		return
	}

	c.metrics.PaymentEvent(string(event.Type), outcomeApplied)
}
