// Package email delivers message notifications to a citizen's email address
// through a pluggable provider registry.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/berez23/io-functions/internal/channel"
	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/sender/email/provider"
	"github.com/berez23/io-functions/pkg/shared"
)

// defaultSubject is used when the message carries no subject of its own.
const defaultSubject = "A new message is available for you"

// Sender delivers email notifications via the configured provider registry.
type Sender struct {
	providers *provider.Registry
	from      string
}

// NewSender creates an email sender with SES and Resend registered. The
// primary provider is chosen by the EMAIL_PROVIDER environment variable,
// defaulting to SES with Resend as fallback.
func NewSender() *Sender {
	registry := provider.NewRegistry()
	registry.Register(provider.NewSESProvider())
	registry.Register(provider.NewResendProvider())

	primary := shared.GetEnvOrDefault("EMAIL_PROVIDER", "ses")
	registry.SetPrimary(primary)
	if primary == "ses" {
		registry.SetFallback("resend")
	} else {
		registry.SetFallback("ses")
	}

	return NewSenderWithRegistry(registry, shared.GetEnvOrDefault("EMAIL_FROM", "no-reply@messaging-platform.local"))
}

// NewSenderWithRegistry creates an email sender with a custom registry.
// This is useful for testing or custom provider configurations.
func NewSenderWithRegistry(registry *provider.Registry, from string) *Sender {
	return &Sender{
		providers: registry,
		from:      from,
	}
}

// Send delivers the notification to the resolved email address.
func (s *Sender) Send(ctx context.Context, ev *events.NotificationEvent, cfg *channel.EmailConfig) error {
	if cfg == nil || cfg.ToAddress == "" {
		return fmt.Errorf("email address is required")
	}
	if !strings.Contains(cfg.ToAddress, "@") {
		return fmt.Errorf("invalid email address format: %q", cfg.ToAddress)
	}

	subject := ev.Message.Content.Subject
	if subject == "" {
		subject = defaultSubject
	}

	req := &provider.EmailRequest{
		From:    s.from,
		To:      []string{cfg.ToAddress},
		Subject: subject,
		Body:    buildTextBody(ev),
		HTML:    buildHTMLBody(ev),
	}

	return s.providers.Send(ctx, req)
}
