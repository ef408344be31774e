package dispatch

import (
	"context"

	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/profile"
)

// The engine depends on capability interfaces only; the physical Postgres,
// S3, and queue clients are wired in at the binary boundary.

// ProfileFinder resolves a citizen's notification preferences.
type ProfileFinder interface {
	// FindProfileByRecipient returns (nil, nil) when no profile exists.
	FindProfileByRecipient(ctx context.Context, recipientID string) (*profile.Profile, error)
}

// AttachmentMeta describes persisted message content.
type AttachmentMeta struct {
	ContentType string `json:"content_type"`
	MediaPath   string `json:"media_path"`
}

// ContentStore persists message content for later inbox retrieval.
type ContentStore interface {
	PersistContent(ctx context.Context, messageID, recipientID string, content events.MessageContent) (*AttachmentMeta, error)
}

// NotificationCreator creates the notification record for one message.
type NotificationCreator interface {
	// CreateNotification returns the persisted record; when a record for the
	// same message already exists it returns that record unchanged.
	CreateNotification(ctx context.Context, n *database.Notification) (*database.Notification, error)
}

// SenderServiceUpserter records the sender-service/recipient relationship.
type SenderServiceUpserter interface {
	UpsertSenderService(ctx context.Context, serviceID, recipientID string) error
}

// MessageStatusUpserter records the processing outcome for a message.
type MessageStatusUpserter interface {
	UpsertMessageStatus(ctx context.Context, messageID string, status database.MessageStatus) error
}
