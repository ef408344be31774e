package sender

import (
	"context"
	"errors"
	"testing"

	"github.com/berez23/io-functions/internal/channel"
	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/internal/events"
)

type fakeEmailDeliverer struct {
	calls int
	err   error
	last  *channel.EmailConfig
}

func (f *fakeEmailDeliverer) Send(ctx context.Context, ev *events.NotificationEvent, cfg *channel.EmailConfig) error {
	f.calls++
	f.last = cfg
	return f.err
}

type fakeWebhookDeliverer struct {
	calls int
	err   error
	last  *channel.WebhookConfig
}

func (f *fakeWebhookDeliverer) Send(ctx context.Context, ev *events.NotificationEvent, cfg *channel.WebhookConfig) error {
	f.calls++
	f.last = cfg
	return f.err
}

func testEvent() *events.NotificationEvent {
	return &events.NotificationEvent{
		NotificationID: "ntf-1",
		Message: events.Message{
			ID:          "msg-1",
			RecipientID: "FRLFRC74E04B157I",
			Content:     events.MessageContent{Subject: "s", Markdown: "m"},
		},
	}
}

func TestSender_DeliverEmail(t *testing.T) {
	e := &fakeEmailDeliverer{}
	w := &fakeWebhookDeliverer{}
	s := NewWithDeliverers(e, w)

	channels := database.NotificationChannels{
		Email: &channel.EmailConfig{ToAddress: "citizen@example.com", AddressSource: channel.SourceProfileAddress},
	}

	if err := s.Deliver(context.Background(), channel.KindEmail, testEvent(), channels); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if e.calls != 1 {
		t.Errorf("email calls = %d, want 1", e.calls)
	}
	if w.calls != 0 {
		t.Errorf("webhook calls = %d, want 0", w.calls)
	}
	if e.last.ToAddress != "citizen@example.com" {
		t.Errorf("ToAddress = %q", e.last.ToAddress)
	}
}

func TestSender_DeliverWebhook(t *testing.T) {
	e := &fakeEmailDeliverer{}
	w := &fakeWebhookDeliverer{}
	s := NewWithDeliverers(e, w)

	channels := database.NotificationChannels{
		Webhook: &channel.WebhookConfig{URL: "https://webhook.example.com/notify"},
	}

	if err := s.Deliver(context.Background(), channel.KindWebhook, testEvent(), channels); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if w.calls != 1 {
		t.Errorf("webhook calls = %d, want 1", w.calls)
	}
	if e.calls != 0 {
		t.Errorf("email calls = %d, want 0", e.calls)
	}
}

func TestSender_DeliverMissingChannelConfig(t *testing.T) {
	s := NewWithDeliverers(&fakeEmailDeliverer{}, &fakeWebhookDeliverer{})
	ctx := context.Background()

	if err := s.Deliver(ctx, channel.KindEmail, testEvent(), database.NotificationChannels{}); err == nil {
		t.Error("Deliver() without email config: error = nil, want error")
	}
	if err := s.Deliver(ctx, channel.KindWebhook, testEvent(), database.NotificationChannels{}); err == nil {
		t.Error("Deliver() without webhook config: error = nil, want error")
	}
}

func TestSender_DeliverUnsupportedChannel(t *testing.T) {
	s := NewWithDeliverers(&fakeEmailDeliverer{}, &fakeWebhookDeliverer{})

	err := s.Deliver(context.Background(), channel.KindInbox, testEvent(), database.NotificationChannels{})
	if err == nil {
		t.Error("Deliver() on inbox channel: error = nil, want error")
	}
}

func TestSender_DeliverPermanentFailureNotRetried(t *testing.T) {
	e := &fakeEmailDeliverer{err: errors.New("invalid email address format")}
	s := NewWithDeliverers(e, &fakeWebhookDeliverer{})

	channels := database.NotificationChannels{
		Email: &channel.EmailConfig{ToAddress: "broken", AddressSource: channel.SourceDefaultAddress},
	}

	if err := s.Deliver(context.Background(), channel.KindEmail, testEvent(), channels); err == nil {
		t.Fatal("Deliver() error = nil, want error")
	}
	if e.calls != 1 {
		t.Errorf("email calls = %d, want 1 (permanent failures are not retried)", e.calls)
	}
}
