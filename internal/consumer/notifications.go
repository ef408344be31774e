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

// NotificationConsumer consumes NotificationEvent payloads from one
// channel-specific sender topic.
type NotificationConsumer struct {
	reader *kafka.Reader
	topic  string
}

// NewNotificationConsumer creates a consumer for the given notification topic.
func NewNotificationConsumer(brokers string, topic string, groupID string) (*NotificationConsumer, error) {
	if err := kafkautil.ValidateConsumerParams(brokers, topic, groupID); err != nil {
		return nil, err
	}

	brokerList := kafkautil.ParseBrokers(brokers)

	slog.Info("Initializing Kafka notification consumer",
		"brokers", brokerList,
		"topic", topic,
		"group_id", groupID,
	)

	reader := kafka.NewReader(kafkautil.NewReaderConfig(brokerList, topic, groupID))

	return &NotificationConsumer{
		reader: reader,
		topic:  topic,
	}, nil
}

// Topic returns the topic this consumer reads from.
func (c *NotificationConsumer) Topic() string {
	return c.topic
}

// ReadMessage fetches the next message and deserializes it as a
// NotificationEvent. The offset is not committed until CommitMessage.
func (c *NotificationConsumer) ReadMessage(ctx context.Context) (*events.NotificationEvent, *kafka.Message, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch message from Kafka: %w", err)
	}

	var ev events.NotificationEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return nil, &msg, fmt.Errorf("failed to unmarshal notification event: %w", err)
	}

	return &ev, &msg, nil
}

// CommitMessage commits the offset for the given message.
func (c *NotificationConsumer) CommitMessage(ctx context.Context, msg *kafka.Message) error {
	return c.reader.CommitMessages(ctx, *msg)
}

// Close gracefully closes the Kafka reader.
func (c *NotificationConsumer) Close() error {
	slog.Info("Closing Kafka notification consumer", "topic", c.topic)
	return c.reader.Close()
}
