// Package channel implements notification channel resolution: deciding, for a
// single created-message event, which delivery channels are eligible and with
// what parameters.
package channel

// Kind identifies a notification delivery channel.
type Kind string

const (
	// KindInbox gates message-content retention, not a delivery channel entry.
	KindInbox Kind = "INBOX"
	// KindEmail delivers the message to an email address.
	KindEmail Kind = "EMAIL"
	// KindWebhook delivers the message to the platform webhook endpoint.
	KindWebhook Kind = "WEBHOOK"
)

// AddressSource records where the target email address came from.
type AddressSource string

const (
	// SourceProfileAddress means the address was read from the citizen profile.
	SourceProfileAddress AddressSource = "PROFILE_ADDRESS"
	// SourceDefaultAddress means the address was supplied by the sender service.
	SourceDefaultAddress AddressSource = "DEFAULT_ADDRESS"
)

// EmailConfig is the delivery configuration of a resolved email channel.
type EmailConfig struct {
	ToAddress     string        `json:"to_address"`
	AddressSource AddressSource `json:"address_source"`
}

// WebhookConfig is the delivery configuration of a resolved webhook channel.
type WebhookConfig struct {
	URL string `json:"url"`
}

// Resolution is the outcome of channel resolution for one event. A message may
// yield zero, one, or both of the email/webhook channels; RetainContent is set
// when the message body must be persisted for later inbox retrieval.
type Resolution struct {
	Email         *EmailConfig
	Webhook       *WebhookConfig
	RetainContent bool
}

// Empty reports whether resolution produced no channels and no content retention.
// An empty resolution is a valid success: the recipient opted out of everything.
func (r Resolution) Empty() bool {
	return r.Email == nil && r.Webhook == nil && !r.RetainContent
}
