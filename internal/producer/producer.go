// Package producer provides Kafka producers for the dispatcher's outputs: the
// channel-specific notification topics, the created-messages requeue path, and
// the dead-letter topic.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/berez23/io-functions/internal/events"
	kafkautil "github.com/berez23/io-functions/pkg/kafka"
)

// NotificationProducer publishes NotificationEvent payloads to one
// channel-specific topic.
type NotificationProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewNotificationProducer creates a producer for the given topic, configured
// for synchronous at-least-once writes.
func NewNotificationProducer(brokers string, topic string) (*NotificationProducer, error) {
	if err := kafkautil.ValidateProducerParams(brokers, topic); err != nil {
		return nil, err
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka producer",
		"brokers", brokerList,
		"topic", topic,
	)

	return &NotificationProducer{
		writer: kafkautil.NewWriter(brokerList, topic),
		topic:  topic,
	}, nil
}

// Publish serializes a notification event to JSON and publishes it, keyed by
// the message ID so redeliveries of the same message hit the same partition.
func (p *NotificationProducer) Publish(ctx context.Context, ev *events.NotificationEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.Message.ID),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish notification event to %s: %w", p.topic, err)
	}

	slog.Debug("Published notification event",
		"topic", p.topic,
		"notification_id", ev.NotificationID,
		"message_id", ev.Message.ID,
	)
	return nil
}

// Close closes the underlying writer.
func (p *NotificationProducer) Close() error {
	return p.writer.Close()
}

// RetryProducer republishes failed created-message events back onto their
// source topic with an incremented delivery-attempt header, and quarantines
// exhausted events on the dead-letter topic.
type RetryProducer struct {
	source *kafka.Writer
	dead   *kafka.Writer
}

// NewRetryProducer creates the requeue/dead-letter producer pair.
func NewRetryProducer(brokers, sourceTopic, deadLetterTopic string) (*RetryProducer, error) {
	if err := kafkautil.ValidateProducerParams(brokers, sourceTopic); err != nil {
		return nil, err
	}
	if deadLetterTopic == "" {
		return nil, fmt.Errorf("dead letter topic cannot be empty")
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	return &RetryProducer{
		source: kafkautil.NewWriter(brokerList, sourceTopic),
		dead:   kafkautil.NewWriter(brokerList, deadLetterTopic),
	}, nil
}

// Requeue publishes the event back onto the source topic carrying the given
// delivery-attempt counter.
func (p *RetryProducer) Requeue(ctx context.Context, ev *events.CreatedMessageEvent, attempt int) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal created message event: %w", err)
	}

	msg := kafka.Message{
		Key:     []byte(ev.Message.ID),
		Value:   payload,
		Headers: []kafka.Header{kafkautil.AttemptHeader(attempt)},
	}

	if err := p.source.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to requeue created message event: %w", err)
	}
	return nil
}

// DeadLetter quarantines the event on the dead-letter topic with its final
// attempt counter and the classified failure reason.
func (p *RetryProducer) DeadLetter(ctx context.Context, ev *events.CreatedMessageEvent, attempt int, reason string) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal created message event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.Message.ID),
		Value: payload,
		Headers: []kafka.Header{
			kafkautil.AttemptHeader(attempt),
			{Key: kafkautil.FailureReasonHeader, Value: []byte(reason)},
		},
	}

	if err := p.dead.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to dead-letter created message event: %w", err)
	}
	return nil
}

// Close closes both underlying writers.
func (p *RetryProducer) Close() error {
	srcErr := p.source.Close()
	deadErr := p.dead.Close()
	if srcErr != nil {
		return srcErr
	}
	return deadErr
}
