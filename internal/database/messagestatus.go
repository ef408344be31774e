package database

import (
	"context"
	"fmt"
)

// MessageStatus reflects the processing outcome recorded for a message.
type MessageStatus string

const (
	// MessageStatusProcessed means the event was dispatched successfully.
	MessageStatusProcessed MessageStatus = "PROCESSED"
	// MessageStatusFailed means the event was quarantined after exhausting retries.
	MessageStatusFailed MessageStatus = "FAILED"
	// MessageStatusRejected means the event was structurally invalid and dropped.
	MessageStatusRejected MessageStatus = "REJECTED"
)

// String returns the status as a string.
func (s MessageStatus) String() string {
	return string(s)
}

// UpsertMessageStatus records the processing outcome for a message, replacing
// any previously recorded status.
func (db *DB) UpsertMessageStatus(ctx context.Context, messageID string, status MessageStatus) error {
	query := `
		INSERT INTO message_status (message_id, status, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (message_id) DO UPDATE
		SET status = EXCLUDED.status, updated_at = NOW()
	`
	if _, err := db.conn.ExecContext(ctx, query, messageID, status.String()); err != nil {
		return fmt.Errorf("failed to upsert message status: %w", err)
	}
	return nil
}
