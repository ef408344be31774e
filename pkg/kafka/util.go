// Package kafka provides shared Kafka utilities for all platform binaries.
package kafka

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	// MaxPollWait is the maximum time a reader waits for new data.
	MaxPollWait = 500 * time.Millisecond
	// WriteTimeout is the maximum time to wait for a write operation.
	WriteTimeout = 10 * time.Second

	// DeliveryAttemptHeader carries the redelivery counter of an event. The
	// first delivery has no header; republished events carry attempt+1.
	DeliveryAttemptHeader = "delivery-attempt"
	// FailureReasonHeader carries the classified error of a dead-lettered event.
	FailureReasonHeader = "failure-reason"
)

// ParseBrokers parses a comma-separated broker list and trims whitespace.
func ParseBrokers(brokers string) []string {
	if brokers == "" {
		return nil
	}
	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}
	return brokerList
}

// ValidateConsumerParams validates common consumer parameters.
func ValidateConsumerParams(brokers, topic, groupID string) error {
	if brokers == "" {
		return fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return fmt.Errorf("groupID cannot be empty")
	}
	return nil
}

// ValidateProducerParams validates common producer parameters.
func ValidateProducerParams(brokers, topic string) error {
	if brokers == "" {
		return fmt.Errorf("brokers cannot be empty")
	}
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	return nil
}

// NewReaderConfig creates a standard reader configuration for at-least-once
// delivery, shared across all consumers in the platform. CommitInterval is
// left at zero so CommitMessages writes synchronously: consumers fetch with
// FetchMessage and commit only after an event's outcome is settled, and an
// uncommitted offset must actually cause redelivery.
func NewReaderConfig(brokers []string, topic, groupID string) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,    // Return immediately when any data is available
		MaxBytes:    10e6, // 10MB
		MaxWait:     MaxPollWait,
		StartOffset: kafka.FirstOffset, // Start from beginning if no committed offset
	}
}

// NewWriter creates a standard synchronous writer for at-least-once delivery,
// with keyed partitioning via the Hash balancer.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: WriteTimeout,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
}

// DeliveryAttempt extracts the redelivery counter from a message's headers.
// A message without the header is on its first delivery.
func DeliveryAttempt(msg *kafka.Message) int {
	for _, h := range msg.Headers {
		if h.Key == DeliveryAttemptHeader {
			if n, err := strconv.Atoi(string(h.Value)); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

// AttemptHeader builds the delivery-attempt header for a republished event.
func AttemptHeader(attempt int) kafka.Header {
	return kafka.Header{
		Key:   DeliveryAttemptHeader,
		Value: []byte(strconv.Itoa(attempt)),
	}
}
