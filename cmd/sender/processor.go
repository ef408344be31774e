package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/berez23/io-functions/internal/channel"
	"github.com/berez23/io-functions/internal/consumer"
	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/metrics"
	"github.com/berez23/io-functions/internal/sender"
)

// processNotifications reads notification events for one delivery channel and
// processes them sequentially. Kafka partitioning already spreads the load
// across sender instances in the consumer group.
func processNotifications(ctx context.Context, c *consumer.NotificationConsumer, kind channel.Kind, db *database.DB, notifSender *sender.Sender, m metrics.Recorder) {
	slog.Info("Starting notification delivery loop", "channel", kind, "topic", c.Topic())

	for {
		select {
		case <-ctx.Done():
			slog.Info("Notification delivery loop stopped", "channel", kind)
			return
		default:
			ev, msg, err := c.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if msg != nil {
					slog.Error("Dropping undecodable notification event", "channel", kind, "error", err)
					m.RecordError()
					commitOffset(ctx, c, msg)
					continue
				}
				slog.Error("Failed to read notification event", "channel", kind, "error", err)
				continue
			}
			m.RecordReceived()
			deliverOne(ctx, c, kind, db, notifSender, m, ev, msg)
		}
	}
}

// deliverOne handles a single notification event: fetch the record, deliver on
// the channel, record the outcome, commit. The offset stays uncommitted when
// the status write fails, so the event is redelivered.
func deliverOne(ctx context.Context, c *consumer.NotificationConsumer, kind channel.Kind, db *database.DB, notifSender *sender.Sender, m metrics.Recorder, ev *events.NotificationEvent, msg *kafka.Message) {
	startTime := time.Now()

	notification, err := db.GetNotification(ctx, ev.NotificationID)
	if err != nil {
		slog.Error("Failed to fetch notification",
			"notification_id", ev.NotificationID,
			"channel", kind,
			"error", err,
		)
		m.RecordError()
		return
	}

	// Redelivery of an already failed notification is not retried here: the
	// delivery layer exhausted its own retries before marking it.
	if notification.Status == database.StatusFailed {
		slog.Debug("Notification already failed, skipping",
			"notification_id", ev.NotificationID,
			"channel", kind,
		)
		m.RecordSkipped()
		commitOffset(ctx, c, msg)
		return
	}

	if err := notifSender.Deliver(ctx, kind, ev, notification.Channels); err != nil {
		slog.Error("Failed to deliver notification",
			"notification_id", ev.NotificationID,
			"channel", kind,
			"error", err,
		)
		if err := db.UpdateNotificationStatus(ctx, ev.NotificationID, database.StatusFailed); err != nil {
			slog.Error("Failed to mark notification as failed",
				"notification_id", ev.NotificationID, "error", err)
			m.RecordError()
			return
		}
		m.RecordProcessed(time.Since(startTime))
		m.RecordError()
		m.RecordFailed()
		commitOffset(ctx, c, msg)
		return
	}

	if err := db.UpdateNotificationStatus(ctx, ev.NotificationID, database.StatusSent); err != nil {
		slog.Error("Failed to update notification status",
			"notification_id", ev.NotificationID, "error", err)
		m.RecordError()
		return
	}

	m.RecordProcessed(time.Since(startTime))
	m.RecordSent()

	slog.Info("Successfully delivered notification",
		"notification_id", ev.NotificationID,
		"message_id", ev.Message.ID,
		"channel", kind,
	)

	commitOffset(ctx, c, msg)
}

// commitOffset commits the Kafka offset for the given message.
func commitOffset(ctx context.Context, c *consumer.NotificationConsumer, msg *kafka.Message) {
	if err := c.CommitMessage(ctx, msg); err != nil {
		slog.Error("Failed to commit offset", "error", err)
	}
}
