package dispatch

import (
	"context"

	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/profile"
)

// FakeProfileFinder is a test fake for ProfileFinder.
type FakeProfileFinder struct {
	Profile    *profile.Profile
	Err        error
	CalledWith []string
}

func (f *FakeProfileFinder) FindProfileByRecipient(ctx context.Context, recipientID string) (*profile.Profile, error) {
	f.CalledWith = append(f.CalledWith, recipientID)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Profile, nil
}

// FakeContentStore is a test fake for ContentStore.
type FakeContentStore struct {
	Meta    *AttachmentMeta
	NilMeta bool
	Err     error
	Calls   []ContentCall
}

type ContentCall struct {
	MessageID   string
	RecipientID string
	Content     events.MessageContent
}

func (f *FakeContentStore) PersistContent(ctx context.Context, messageID, recipientID string, content events.MessageContent) (*AttachmentMeta, error) {
	f.Calls = append(f.Calls, ContentCall{MessageID: messageID, RecipientID: recipientID, Content: content})
	if f.Err != nil {
		return nil, f.Err
	}
	if f.NilMeta {
		return nil, nil
	}
	if f.Meta != nil {
		return f.Meta, nil
	}
	return &AttachmentMeta{ContentType: "application/json", MediaPath: "media.json"}, nil
}

// FakeNotificationCreator is a test fake for NotificationCreator.
type FakeNotificationCreator struct {
	Created  []*database.Notification
	Existing *database.Notification
	Err      error
}

func (f *FakeNotificationCreator) CreateNotification(ctx context.Context, n *database.Notification) (*database.Notification, error) {
	f.Created = append(f.Created, n)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Existing != nil {
		return f.Existing, nil
	}
	return n, nil
}

// FakeSenderServiceUpserter is a test fake for SenderServiceUpserter.
type FakeSenderServiceUpserter struct {
	Err   error
	Calls []SenderServiceCall
}

type SenderServiceCall struct {
	ServiceID   string
	RecipientID string
}

func (f *FakeSenderServiceUpserter) UpsertSenderService(ctx context.Context, serviceID, recipientID string) error {
	f.Calls = append(f.Calls, SenderServiceCall{ServiceID: serviceID, RecipientID: recipientID})
	return f.Err
}

// FakeMessageStatusUpserter is a test fake for MessageStatusUpserter.
type FakeMessageStatusUpserter struct {
	Err      error
	Statuses map[string]database.MessageStatus
}

func (f *FakeMessageStatusUpserter) UpsertMessageStatus(ctx context.Context, messageID string, status database.MessageStatus) error {
	if f.Err != nil {
		return f.Err
	}
	if f.Statuses == nil {
		f.Statuses = make(map[string]database.MessageStatus)
	}
	f.Statuses[messageID] = status
	return nil
}
