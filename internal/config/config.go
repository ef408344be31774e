// Package config provides configuration parsing and validation for the
// platform binaries.
package config

import (
	"fmt"
)

// Dispatcher holds all configuration parameters for the dispatcher service.
type Dispatcher struct {
	KafkaBrokers         string
	CreatedMessagesTopic string
	EmailTopic           string
	WebhookTopic         string
	DeadLetterTopic      string
	ConsumerGroupID      string
	PostgresDSN          string
	RedisAddr            string
	WebhookChannelURL    string
	ContentBucket        string
	ContentRegion        string
	ContentEndpoint      string
	MaxDeliveryAttempts  int
}

// Validate checks that all required dispatcher fields are set.
func (c *Dispatcher) Validate() error {
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.CreatedMessagesTopic == "" {
		return fmt.Errorf("created-messages-topic cannot be empty")
	}
	if c.EmailTopic == "" {
		return fmt.Errorf("email-topic cannot be empty")
	}
	if c.WebhookTopic == "" {
		return fmt.Errorf("webhook-topic cannot be empty")
	}
	if c.DeadLetterTopic == "" {
		return fmt.Errorf("dead-letter-topic cannot be empty")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("consumer-group-id cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	if c.WebhookChannelURL == "" {
		return fmt.Errorf("webhook-channel-url cannot be empty")
	}
	if c.ContentBucket == "" {
		return fmt.Errorf("content-bucket cannot be empty")
	}
	if c.MaxDeliveryAttempts < 1 {
		return fmt.Errorf("max-delivery-attempts must be at least 1")
	}
	return nil
}

// Sender holds all configuration parameters for the sender service.
type Sender struct {
	KafkaBrokers    string
	EmailTopic      string
	WebhookTopic    string
	ConsumerGroupID string
	PostgresDSN     string
	RedisAddr       string
}

// Validate checks that all required sender fields are set.
func (c *Sender) Validate() error {
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.EmailTopic == "" {
		return fmt.Errorf("email-topic cannot be empty")
	}
	if c.WebhookTopic == "" {
		return fmt.Errorf("webhook-topic cannot be empty")
	}
	if c.ConsumerGroupID == "" {
		return fmt.Errorf("consumer-group-id cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	return nil
}

// ServicesAPI holds all configuration parameters for the services API.
type ServicesAPI struct {
	HTTPPort    string
	PostgresDSN string
	RedisAddr   string
}

// Validate checks that all required services API fields are set.
func (c *ServicesAPI) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http-port cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	return nil
}
