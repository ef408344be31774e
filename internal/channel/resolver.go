package channel

import (
	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/profile"
)

// IsBlocked reports whether the citizen blocked the given channel for the
// given sender service. A nil profile never blocks anything: blocking is
// meaningless with no preferences to override.
func IsBlocked(p *profile.Profile, serviceID string, kind Kind) bool {
	for _, name := range p.BlockedChannels(serviceID) {
		if Kind(name) == kind {
			return true
		}
	}
	return false
}

// Resolve evaluates each candidate channel independently and returns the set
// of channel configurations to materialize for one event.
//
// Email: the candidate address is the profile's stored address, falling back
// to the sender-provided default when the profile is missing or has no
// address. Blocking EMAIL suppresses the channel regardless of address
// availability.
//
// Webhook: produced only when a profile exists, webhooks are enabled in it,
// and WEBHOOK is not blocked. The destination is the platform-wide endpoint.
//
// Inbox: content retention applies only when a profile exists, the inbox is
// enabled in it, and INBOX is not blocked. Blocking INBOX gates retention
// alone, not the other channels.
func Resolve(p *profile.Profile, serviceID string, defaults *events.DefaultAddresses, webhookURL string) Resolution {
	var res Resolution

	if !IsBlocked(p, serviceID, KindEmail) {
		if addr := emailAddress(p, defaults); addr != nil {
			res.Email = addr
		}
	}

	if p != nil && p.IsWebhookEnabled && !IsBlocked(p, serviceID, KindWebhook) {
		res.Webhook = &WebhookConfig{URL: webhookURL}
	}

	if p != nil && p.IsInboxEnabled && !IsBlocked(p, serviceID, KindInbox) {
		res.RetainContent = true
	}

	return res
}

// emailAddress picks the target email address and tags its source.
// Returns nil when no usable address exists.
func emailAddress(p *profile.Profile, defaults *events.DefaultAddresses) *EmailConfig {
	if p != nil && p.Email != "" {
		return &EmailConfig{ToAddress: p.Email, AddressSource: SourceProfileAddress}
	}
	if defaults != nil && defaults.Email != "" {
		return &EmailConfig{ToAddress: defaults.Email, AddressSource: SourceDefaultAddress}
	}
	return nil
}
