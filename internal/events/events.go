// Package events defines the event structures flowing through the messaging platform:
// created-message events consumed by the dispatcher and notification events published
// to the channel-specific sender topics.
package events

import (
	"fmt"
	"regexp"
	"time"
)

// recipientIDPattern matches the national citizen code format used as the
// recipient identifier throughout the platform.
var recipientIDPattern = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)

// MessageContent is the subject and markdown body of a message.
type MessageContent struct {
	Subject  string `json:"subject"`
	Markdown string `json:"markdown"`
}

// Message is the message embedded in a created-message event.
type Message struct {
	ID                string         `json:"id"`
	RecipientID       string         `json:"recipient_id"`
	SenderServiceID   string         `json:"sender_service_id"`
	SenderUserID      string         `json:"sender_user_id"`
	Content           MessageContent `json:"content"`
	TimeToLiveSeconds int            `json:"time_to_live_seconds"`
	CreatedAt         time.Time      `json:"created_at"`
}

// SenderMetadata carries the display names of the sending organization,
// department and service at the time the message was created.
type SenderMetadata struct {
	ServiceName      string `json:"service_name"`
	DepartmentName   string `json:"department_name"`
	OrganizationName string `json:"organization_name"`
}

// DefaultAddresses holds fallback contact details supplied by the sending
// service for recipients without a stored profile (or a profile missing the
// relevant field).
type DefaultAddresses struct {
	Email string `json:"email,omitempty"`
}

// CreatedMessageEvent is emitted by the messages API when a new message is
// created. It is the sole input of the dispatch engine and is never mutated.
type CreatedMessageEvent struct {
	Message          Message           `json:"message"`
	SenderMetadata   SenderMetadata    `json:"sender_metadata"`
	ServiceVersion   int               `json:"service_version"`
	DefaultAddresses *DefaultAddresses `json:"default_addresses,omitempty"`
}

// Validate checks the structural constraints of a created-message event.
// A validation failure can never be fixed by redelivering the same event.
func (e *CreatedMessageEvent) Validate() error {
	if e.Message.ID == "" {
		return fmt.Errorf("message id cannot be empty")
	}
	if !IsValidRecipientID(e.Message.RecipientID) {
		return fmt.Errorf("malformed recipient identifier: %q", e.Message.RecipientID)
	}
	if e.Message.SenderServiceID == "" {
		return fmt.Errorf("sender service id cannot be empty")
	}
	if e.Message.Content.Subject == "" && e.Message.Content.Markdown == "" {
		return fmt.Errorf("message content cannot be empty")
	}
	if e.ServiceVersion < 0 {
		return fmt.Errorf("service version cannot be negative")
	}
	return nil
}

// IsValidRecipientID reports whether the recipient identifier is well formed.
func IsValidRecipientID(id string) bool {
	return recipientIDPattern.MatchString(id)
}

// NotificationEvent is published for each channel produced by the dispatch
// engine. It carries everything a downstream sender needs: the persisted
// notification identity, the original message, and the sender metadata.
type NotificationEvent struct {
	NotificationID string         `json:"notification_id"`
	Message        Message        `json:"message"`
	SenderMetadata SenderMetadata `json:"sender_metadata"`
}
