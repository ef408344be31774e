// Package webhook delivers message notifications to the platform webhook
// endpoint via HTTP POST.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/berez23/io-functions/internal/channel"
	"github.com/berez23/io-functions/internal/events"
)

// Payload is the JSON body posted to the webhook endpoint.
type Payload struct {
	NotificationID string                `json:"notification_id"`
	MessageID      string                `json:"message_id"`
	RecipientID    string                `json:"recipient_id"`
	Content        events.MessageContent `json:"content"`
	SenderMetadata events.SenderMetadata `json:"sender_metadata"`
	CreatedAt      time.Time             `json:"created_at"`
}

// Sender delivers webhook notifications via HTTP POST.
type Sender struct {
	httpClient *http.Client
}

// NewSender creates a new webhook sender.
func NewSender() *Sender {
	return &Sender{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewSenderWithClient creates a webhook sender with a custom HTTP client.
// This is useful for testing.
func NewSenderWithClient(client *http.Client) *Sender {
	return &Sender{httpClient: client}
}

// Send posts the notification payload to the resolved webhook URL.
func (s *Sender) Send(ctx context.Context, ev *events.NotificationEvent, cfg *channel.WebhookConfig) error {
	if cfg == nil || cfg.URL == "" {
		return fmt.Errorf("webhook url is required")
	}
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return fmt.Errorf("invalid webhook url: %q", cfg.URL)
	}

	payload := Payload{
		NotificationID: ev.NotificationID,
		MessageID:      ev.Message.ID,
		RecipientID:    ev.Message.RecipientID,
		Content:        ev.Message.Content,
		SenderMetadata: ev.SenderMetadata,
		CreatedAt:      ev.Message.CreatedAt,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	slog.Info("Successfully sent webhook notification",
		"notification_id", ev.NotificationID,
		"message_id", ev.Message.ID,
	)

	return nil
}
