// Package dispatch implements the notification dispatch engine: the procedure
// that turns one created-message event into zero or more notification channels,
// persists the resulting records, and classifies every failure as transient or
// terminal for the queue-consumption boundary.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/berez23/io-functions/internal/channel"
	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/internal/events"
)

// Result is the success payload of one dispatched event. Each field is set
// only when the corresponding channel was produced; both absent is a valid
// success (the recipient opted out of everything).
type Result struct {
	EmailNotification   *events.NotificationEvent
	WebhookNotification *events.NotificationEvent
}

// Empty reports whether no channel was produced.
func (r *Result) Empty() bool {
	return r.EmailNotification == nil && r.WebhookNotification == nil
}

// Dispatcher sequences profile lookup, channel resolution, content retention,
// notification creation and bookkeeping for one event at a time. It holds no
// state across invocations and is safe for concurrent use.
type Dispatcher struct {
	profiles       ProfileFinder
	content        ContentStore
	notifications  NotificationCreator
	senderServices SenderServiceUpserter
	statuses       MessageStatusUpserter
	webhookURL     string
}

// NewDispatcher creates a dispatcher with the given collaborators. webhookURL
// is the platform-wide webhook endpoint used for every webhook channel.
func NewDispatcher(
	profiles ProfileFinder,
	content ContentStore,
	notifications NotificationCreator,
	senderServices SenderServiceUpserter,
	statuses MessageStatusUpserter,
	webhookURL string,
) *Dispatcher {
	return &Dispatcher{
		profiles:       profiles,
		content:        content,
		notifications:  notifications,
		senderServices: senderServices,
		statuses:       statuses,
		webhookURL:     webhookURL,
	}
}

// HandleMessage processes a single created-message event and returns either a
// success payload (possibly empty) or a classified error. It never retries
// internally: retries happen at the queue boundary by full-event redelivery.
func (d *Dispatcher) HandleMessage(ctx context.Context, ev *events.CreatedMessageEvent) (*Result, error) {
	if err := ev.Validate(); err != nil {
		return nil, &TerminalError{Err: err}
	}

	msg := &ev.Message

	p, err := d.profiles.FindProfileByRecipient(ctx, msg.RecipientID)
	if err != nil {
		return nil, Transientf("profile lookup failed for message %s: %w", msg.ID, err)
	}

	res := channel.Resolve(p, msg.SenderServiceID, ev.DefaultAddresses, d.webhookURL)

	if res.RetainContent {
		meta, err := d.content.PersistContent(ctx, msg.ID, msg.RecipientID, msg.Content)
		if err != nil {
			return nil, Transientf("content persist failed for message %s: %w", msg.ID, err)
		}
		if meta != nil {
			slog.Debug("Persisted message content",
				"message_id", msg.ID,
				"media_path", meta.MediaPath,
			)
		}
	}

	result := &Result{}

	if res.Email != nil || res.Webhook != nil {
		record := &database.Notification{
			NotificationID: uuid.NewString(),
			MessageID:      msg.ID,
			RecipientID:    msg.RecipientID,
			Channels: database.NotificationChannels{
				Email:   res.Email,
				Webhook: res.Webhook,
			},
			Status: database.StatusPending,
		}

		created, err := d.notifications.CreateNotification(ctx, record)
		if err != nil {
			return nil, Transientf("notification create failed for message %s: %w", msg.ID, err)
		}

		notificationEvent := events.NotificationEvent{
			NotificationID: created.NotificationID,
			Message:        ev.Message,
			SenderMetadata: ev.SenderMetadata,
		}
		if res.Email != nil {
			emailEvent := notificationEvent
			result.EmailNotification = &emailEvent
		}
		if res.Webhook != nil {
			webhookEvent := notificationEvent
			result.WebhookNotification = &webhookEvent
		}
	}

	// Bookkeeping is best-effort visibility metadata: a failure here must not
	// fail a dispatch whose notifications are already persisted.
	if err := d.senderServices.UpsertSenderService(ctx, msg.SenderServiceID, msg.RecipientID); err != nil {
		slog.Warn("Failed to upsert sender service",
			"service_id", msg.SenderServiceID,
			"message_id", msg.ID,
			"error", err,
		)
	}

	if err := d.statuses.UpsertMessageStatus(ctx, msg.ID, database.MessageStatusProcessed); err != nil {
		return nil, Transientf("message status upsert failed for message %s: %w", msg.ID, err)
	}

	return result, nil
}
