package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/berez23/io-functions/internal/channel"
)

// NotificationStatus represents the delivery state of a notification record.
type NotificationStatus string

const (
	// StatusPending means the notification was created but not yet delivered.
	StatusPending NotificationStatus = "PENDING"
	// StatusSent means all resolved channels were delivered.
	StatusSent NotificationStatus = "SENT"
	// StatusFailed means delivery failed after the sender gave up.
	StatusFailed NotificationStatus = "FAILED"
)

// String returns the status as a string.
func (s NotificationStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status is final and the notification should
// not be delivered again.
func (s NotificationStatus) IsTerminal() bool {
	return s == StatusSent || s == StatusFailed
}

// NotificationChannels holds the per-channel delivery parameters of a
// notification. Each entry is present only when the channel was resolved.
type NotificationChannels struct {
	Email   *channel.EmailConfig   `json:"email,omitempty"`
	Webhook *channel.WebhookConfig `json:"webhook,omitempty"`
}

// Notification is the record produced by the dispatch engine: at most one per
// message, immutable once created except for its delivery status.
type Notification struct {
	NotificationID string
	MessageID      string
	RecipientID    string
	Channels       NotificationChannels
	Status         NotificationStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateNotification inserts a notification with idempotency protection: the
// unique constraint on message_id is the dedupe boundary. When a record for
// the same message already exists, the existing record is returned unchanged
// (success without write), so full-event redelivery converges on one identity.
func (db *DB) CreateNotification(ctx context.Context, n *Notification) (*Notification, error) {
	channelsJSON, err := json.Marshal(n.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification channels: %w", err)
	}

	query := `
		INSERT INTO notifications (notification_id, message_id, recipient_id, channels, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (message_id) DO NOTHING
		RETURNING notification_id
	`
	var insertedID string
	err = db.conn.QueryRowContext(ctx, query,
		n.NotificationID,
		n.MessageID,
		n.RecipientID,
		string(channelsJSON),
		n.Status.String(),
	).Scan(&insertedID)

	if err == sql.ErrNoRows {
		// Conflict: a notification for this message already exists.
		return db.GetNotificationByMessageID(ctx, n.MessageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	created := *n
	created.NotificationID = insertedID
	return &created, nil
}

// GetNotification retrieves a notification by its identity.
func (db *DB) GetNotification(ctx context.Context, notificationID string) (*Notification, error) {
	query := `
		SELECT notification_id, message_id, recipient_id, channels, status, created_at, updated_at
		FROM notifications
		WHERE notification_id = $1
	`
	return db.scanNotification(db.conn.QueryRowContext(ctx, query, notificationID))
}

// GetNotificationByMessageID retrieves the notification created for a message.
func (db *DB) GetNotificationByMessageID(ctx context.Context, messageID string) (*Notification, error) {
	query := `
		SELECT notification_id, message_id, recipient_id, channels, status, created_at, updated_at
		FROM notifications
		WHERE message_id = $1
	`
	return db.scanNotification(db.conn.QueryRowContext(ctx, query, messageID))
}

// UpdateNotificationStatus updates the delivery status of a notification.
func (db *DB) UpdateNotificationStatus(ctx context.Context, notificationID string, status NotificationStatus) error {
	query := `
		UPDATE notifications
		SET status = $2, updated_at = NOW()
		WHERE notification_id = $1
	`
	result, err := db.conn.ExecContext(ctx, query, notificationID, status.String())
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("notification not found: %s", notificationID)
	}
	return nil
}

func (db *DB) scanNotification(row *sql.Row) (*Notification, error) {
	var n Notification
	var channelsJSON sql.NullString
	var status string
	err := row.Scan(
		&n.NotificationID,
		&n.MessageID,
		&n.RecipientID,
		&channelsJSON,
		&status,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}

	n.Status = NotificationStatus(status)
	if channelsJSON.Valid && channelsJSON.String != "" {
		if err := json.Unmarshal([]byte(channelsJSON.String), &n.Channels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification channels: %w", err)
		}
	}
	return &n, nil
}
