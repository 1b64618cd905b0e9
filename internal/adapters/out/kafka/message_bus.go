// Package kafka publishes outbox messages to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/ports"

	"github.com/IBM/sarama"
)

// Envelope is the value written to the topic. Consumers dispatch on EventType.
type Envelope struct {
	ID          string          `json:"id"`
	AggregateID string          `json:"aggregate_id"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurred_at"`
	PublishedAt time.Time       `json:"published_at"`
}

// MessageBus implements ports.MessageBus over a sarama SyncProducer. Messages are keyed by
// aggregate id so every event of one piece or order lands in the same partition.
type MessageBus struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

var _ ports.MessageBus = (*MessageBus)(nil)

func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	return config
}

// NewMessageBus dials brokers.
func NewMessageBus(brokers []string, topic string, logger *slog.Logger) (*MessageBus, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewMessageBusWithProducer(producer, topic, logger), nil
}

func NewMessageBusWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *MessageBus {
	return &MessageBus{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_message_bus"),
	}
}

func (b *MessageBus) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	value, err := json.Marshal(newEnvelope(msg, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	partition, offset, err := b.producer.SendMessage(&sarama.ProducerMessage{
		Topic: b.topic,
		Key:   sarama.StringEncoder(msg.AggregateID.String()),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(msg.Name)},
		},
		Timestamp: msg.OccurredAt,
	})
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to send message to kafka",
			"topic", b.topic, "event", msg.Name, "id", msg.ID.String(), "error", err)
		return fmt.Errorf("failed to send message: %w", err)
	}

	b.logger.DebugContext(ctx, "Message sent to kafka",
		"topic", b.topic, "event", msg.Name, "partition", partition, "offset", offset)
	return nil
}

func (b *MessageBus) Close() error {
	if err := b.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

func newEnvelope(msg ports.OutboxMessage, publishedAt time.Time) Envelope {
	payload := json.RawMessage(msg.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return Envelope{
		ID:          msg.ID.String(),
		AggregateID: msg.AggregateID.String(),
		EventType:   msg.Name,
		Payload:     payload,
		OccurredAt:  msg.OccurredAt,
		PublishedAt: publishedAt,
	}
}
