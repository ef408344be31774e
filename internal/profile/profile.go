// Package profile defines the citizen notification preference record.
// Profiles are owned by the profile service; the dispatch engine only reads them.
package profile

// Profile holds a citizen's stored notification preferences.
//
// The absence of a profile record is a valid state (the citizen never
// registered); callers represent it with a nil *Profile and fall back to the
// sender-provided default addresses where allowed.
type Profile struct {
	RecipientID      string
	Email            string // empty when the citizen never stored an address
	IsInboxEnabled   bool
	IsWebhookEnabled bool

	// BlockedInboxOrChannels maps a sender service ID to the set of
	// channel names the citizen blocked for that service. A missing key
	// means nothing is blocked for that service.
	BlockedInboxOrChannels map[string][]string

	Version int
}

// BlockedChannels returns the blocked channel names for the given service.
// It returns an empty slice for a nil profile or an unknown service, so
// callers never need a nil check.
func (p *Profile) BlockedChannels(serviceID string) []string {
	if p == nil || p.BlockedInboxOrChannels == nil {
		return nil
	}
	return p.BlockedInboxOrChannels[serviceID]
}
