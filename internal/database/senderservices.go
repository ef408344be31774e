package database

import (
	"context"
	"fmt"
)

// UpsertSenderService records that the given service notified the given
// recipient, bumping the relationship version and the last-notification
// timestamp. This is visibility bookkeeping, not delivery state.
func (db *DB) UpsertSenderService(ctx context.Context, serviceID, recipientID string) error {
	query := `
		INSERT INTO sender_services (service_id, recipient_id, last_notification_at, version)
		VALUES ($1, $2, NOW(), 1)
		ON CONFLICT (service_id, recipient_id) DO UPDATE
		SET last_notification_at = NOW(), version = sender_services.version + 1
	`
	if _, err := db.conn.ExecContext(ctx, query, serviceID, recipientID); err != nil {
		return fmt.Errorf("failed to upsert sender service: %w", err)
	}
	return nil
}
