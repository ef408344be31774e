package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/berez23/io-functions/internal/profile"
)

// FindProfileByRecipient retrieves the citizen profile for the given recipient
// identifier. Returns (nil, nil) when no profile exists: that is a valid state,
// not an error.
func (db *DB) FindProfileByRecipient(ctx context.Context, recipientID string) (*profile.Profile, error) {
	query := `
		SELECT recipient_id, email, is_inbox_enabled, is_webhook_enabled, blocked_channels, version
		FROM profiles
		WHERE recipient_id = $1
	`
	var p profile.Profile
	var email sql.NullString
	var blockedJSON sql.NullString
	err := db.conn.QueryRowContext(ctx, query, recipientID).Scan(
		&p.RecipientID,
		&email,
		&p.IsInboxEnabled,
		&p.IsWebhookEnabled,
		&blockedJSON,
		&p.Version,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	if email.Valid {
		p.Email = email.String
	}
	p.BlockedInboxOrChannels = unmarshalBlockedChannels(blockedJSON, "recipient_id", recipientID)

	return &p, nil
}

// unmarshalBlockedChannels deserializes the blocked-channels JSON map.
// A missing or unparsable value degrades to an empty map rather than failing
// the whole lookup.
func unmarshalBlockedChannels(blockedJSON sql.NullString, warnAttrs ...any) map[string][]string {
	if !blockedJSON.Valid || blockedJSON.String == "" {
		return make(map[string][]string)
	}

	var blocked map[string][]string
	if err := json.Unmarshal([]byte(blockedJSON.String), &blocked); err != nil {
		slog.Warn("Failed to unmarshal blocked channels JSON", append([]any{"error", err}, warnAttrs...)...)
		return make(map[string][]string)
	}
	if blocked == nil {
		return make(map[string][]string)
	}
	return blocked
}
