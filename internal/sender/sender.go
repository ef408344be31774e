// Package sender coordinates per-channel notification delivery. It routes a
// notification event to the email or webhook sender and applies bounded
// retry with exponential backoff around each delivery.
package sender

import (
	"context"
	"fmt"

	"github.com/berez23/io-functions/internal/channel"
	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/sender/email"
	"github.com/berez23/io-functions/internal/sender/retry"
	"github.com/berez23/io-functions/internal/sender/webhook"
)

// EmailDeliverer sends a notification to an email address.
type EmailDeliverer interface {
	Send(ctx context.Context, ev *events.NotificationEvent, cfg *channel.EmailConfig) error
}

// WebhookDeliverer posts a notification to a webhook endpoint.
type WebhookDeliverer interface {
	Send(ctx context.Context, ev *events.NotificationEvent, cfg *channel.WebhookConfig) error
}

// Sender routes notification events to the appropriate channel sender.
type Sender struct {
	email    EmailDeliverer
	webhook  WebhookDeliverer
	retryCfg retry.Config
}

// New creates a sender with the default email and webhook channel senders.
func New() *Sender {
	return NewWithDeliverers(email.NewSender(), webhook.NewSender())
}

// NewWithDeliverers creates a sender with explicit channel senders.
// This constructor is primarily for testing.
func NewWithDeliverers(e EmailDeliverer, w WebhookDeliverer) *Sender {
	return &Sender{
		email:    e,
		webhook:  w,
		retryCfg: retry.DefaultConfig(),
	}
}

// Deliver sends the notification on the given channel using the delivery
// parameters persisted on the notification record. Transient delivery errors
// are retried with backoff before the error is surfaced.
func (s *Sender) Deliver(ctx context.Context, kind channel.Kind, ev *events.NotificationEvent, channels database.NotificationChannels) error {
	switch kind {
	case channel.KindEmail:
		if channels.Email == nil {
			return fmt.Errorf("notification %s has no email channel", ev.NotificationID)
		}
		operation := fmt.Sprintf("send_email_%s", ev.NotificationID)
		return retry.WithRetry(ctx, s.retryCfg, operation, func() error {
			return s.email.Send(ctx, ev, channels.Email)
		})

	case channel.KindWebhook:
		if channels.Webhook == nil {
			return fmt.Errorf("notification %s has no webhook channel", ev.NotificationID)
		}
		operation := fmt.Sprintf("send_webhook_%s", ev.NotificationID)
		return retry.WithRetry(ctx, s.retryCfg, operation, func() error {
			return s.webhook.Send(ctx, ev, channels.Webhook)
		})

	default:
		return fmt.Errorf("unsupported delivery channel: %s", kind)
	}
}
