// Package consumer provides Kafka consumer functionality for the
// created-messages topic.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/berez23/io-functions/internal/events"
	kafkautil "github.com/berez23/io-functions/pkg/kafka"
)

// Consumer wraps a Kafka reader and provides a simple interface for consuming
// created-message events.
type Consumer struct {
	reader *kafka.Reader
	topic  string
}

// NewConsumer creates a new Kafka consumer with the specified brokers, topic,
// and group ID. The consumer is configured for at-least-once delivery.
func NewConsumer(brokers string, topic string, groupID string) (*Consumer, error) {
	if err := kafkautil.ValidateConsumerParams(brokers, topic, groupID); err != nil {
		return nil, err
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka consumer",
		"brokers", brokerList,
		"topic", topic,
		"group_id", groupID,
	)

	reader := kafka.NewReader(kafkautil.NewReaderConfig(brokerList, topic, groupID))

	return &Consumer{
		reader: reader,
		topic:  topic,
	}, nil
}

// ReadMessage fetches the next message from Kafka and deserializes it as a
// CreatedMessageEvent. The returned delivery attempt counts how many times
// the event has been delivered including this one. The offset is not
// committed; the caller commits via CommitMessage once the event is settled.
func (c *Consumer) ReadMessage(ctx context.Context) (*events.CreatedMessageEvent, int, *kafka.Message, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch message from Kafka: %w", err)
	}

	var ev events.CreatedMessageEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return nil, 0, &msg, fmt.Errorf("failed to unmarshal created message event: %w", err)
	}

	return &ev, kafkautil.DeliveryAttempt(&msg), &msg, nil
}

// CommitMessage commits the offset for the given message.
// This should be called only after the message has been fully handled.
func (c *Consumer) CommitMessage(ctx context.Context, msg *kafka.Message) error {
	return c.reader.CommitMessages(ctx, *msg)
}

// Close gracefully closes the Kafka reader and releases resources.
func (c *Consumer) Close() error {
	slog.Info("Closing Kafka consumer", "topic", c.topic)
	if err := c.reader.Close(); err != nil {
		slog.Error("Error closing Kafka consumer", "error", err)
		return err
	}
	return nil
}
