package channel

import (
	"reflect"
	"testing"

	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/profile"
)

const (
	aServiceID  = "s123"
	anEmail     = "x@example.com"
	aWebhookURL = "https://webhook.example.com/notify"
)

func profileWithEmail() *profile.Profile {
	return &profile.Profile{
		RecipientID: "FRLFRC74E04B157I",
		Email:       anEmail,
	}
}

func TestIsBlocked(t *testing.T) {
	tests := []struct {
		name    string
		profile *profile.Profile
		kind    Kind
		want    bool
	}{
		{
			name:    "nil profile never blocks",
			profile: nil,
			kind:    KindEmail,
			want:    false,
		},
		{
			name:    "no blocked map",
			profile: profileWithEmail(),
			kind:    KindEmail,
			want:    false,
		},
		{
			name: "channel blocked for this service",
			profile: &profile.Profile{
				BlockedInboxOrChannels: map[string][]string{
					aServiceID: {"EMAIL"},
				},
			},
			kind: KindEmail,
			want: true,
		},
		{
			name: "different channel blocked",
			profile: &profile.Profile{
				BlockedInboxOrChannels: map[string][]string{
					aServiceID: {"WEBHOOK"},
				},
			},
			kind: KindEmail,
			want: false,
		},
		{
			name: "channel blocked for another service only",
			profile: &profile.Profile{
				BlockedInboxOrChannels: map[string][]string{
					"other-service": {"EMAIL"},
				},
			},
			kind: KindEmail,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlocked(tt.profile, aServiceID, tt.kind); got != tt.want {
				t.Errorf("IsBlocked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_Email(t *testing.T) {
	tests := []struct {
		name     string
		profile  *profile.Profile
		defaults *events.DefaultAddresses
		want     *EmailConfig
	}{
		{
			name:    "profile address wins",
			profile: profileWithEmail(),
			want:    &EmailConfig{ToAddress: anEmail, AddressSource: SourceProfileAddress},
		},
		{
			name:     "profile without address falls back to default",
			profile:  &profile.Profile{RecipientID: "FRLFRC74E04B157I"},
			defaults: &events.DefaultAddresses{Email: anEmail},
			want:     &EmailConfig{ToAddress: anEmail, AddressSource: SourceDefaultAddress},
		},
		{
			name:     "no profile falls back to default",
			profile:  nil,
			defaults: &events.DefaultAddresses{Email: anEmail},
			want:     &EmailConfig{ToAddress: anEmail, AddressSource: SourceDefaultAddress},
		},
		{
			name:    "no address anywhere produces no email channel",
			profile: &profile.Profile{RecipientID: "FRLFRC74E04B157I"},
			want:    nil,
		},
		{
			name:    "no profile and no defaults produces no email channel",
			profile: nil,
			want:    nil,
		},
		{
			name: "blocked email suppresses channel even with address",
			profile: &profile.Profile{
				Email: anEmail,
				BlockedInboxOrChannels: map[string][]string{
					aServiceID: {"EMAIL"},
				},
			},
			defaults: &events.DefaultAddresses{Email: anEmail},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.profile, aServiceID, tt.defaults, aWebhookURL)
			if !reflect.DeepEqual(res.Email, tt.want) {
				t.Errorf("Resolve().Email = %+v, want %+v", res.Email, tt.want)
			}
		})
	}
}

func TestResolve_Webhook(t *testing.T) {
	tests := []struct {
		name    string
		profile *profile.Profile
		want    *WebhookConfig
	}{
		{
			name:    "webhook enabled",
			profile: &profile.Profile{IsWebhookEnabled: true},
			want:    &WebhookConfig{URL: aWebhookURL},
		},
		{
			name:    "webhook disabled",
			profile: &profile.Profile{IsWebhookEnabled: false},
			want:    nil,
		},
		{
			name:    "no profile means no webhook",
			profile: nil,
			want:    nil,
		},
		{
			name: "webhook blocked for this service",
			profile: &profile.Profile{
				IsWebhookEnabled: true,
				BlockedInboxOrChannels: map[string][]string{
					aServiceID: {"WEBHOOK"},
				},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.profile, aServiceID, nil, aWebhookURL)
			if !reflect.DeepEqual(res.Webhook, tt.want) {
				t.Errorf("Resolve().Webhook = %+v, want %+v", res.Webhook, tt.want)
			}
		})
	}
}

func TestResolve_ContentRetention(t *testing.T) {
	tests := []struct {
		name    string
		profile *profile.Profile
		want    bool
	}{
		{
			name:    "inbox enabled",
			profile: &profile.Profile{IsInboxEnabled: true},
			want:    true,
		},
		{
			name:    "inbox disabled",
			profile: &profile.Profile{IsInboxEnabled: false},
			want:    false,
		},
		{
			name:    "no profile means no retention",
			profile: nil,
			want:    false,
		},
		{
			name: "inbox blocked for this service",
			profile: &profile.Profile{
				IsInboxEnabled: true,
				BlockedInboxOrChannels: map[string][]string{
					aServiceID: {"INBOX"},
				},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.profile, aServiceID, nil, aWebhookURL)
			if res.RetainContent != tt.want {
				t.Errorf("Resolve().RetainContent = %v, want %v", res.RetainContent, tt.want)
			}
		})
	}
}

// Blocking INBOX gates content retention only; email and webhook channels are
// resolved independently of it.
func TestResolve_InboxBlockDoesNotGateOtherChannels(t *testing.T) {
	p := &profile.Profile{
		Email:            anEmail,
		IsInboxEnabled:   true,
		IsWebhookEnabled: true,
		BlockedInboxOrChannels: map[string][]string{
			aServiceID: {"INBOX"},
		},
	}

	res := Resolve(p, aServiceID, nil, aWebhookURL)

	if res.RetainContent {
		t.Error("RetainContent = true, want false when INBOX is blocked")
	}
	if res.Email == nil {
		t.Error("Email channel missing, blocking INBOX must not gate email")
	}
	if res.Webhook == nil {
		t.Error("Webhook channel missing, blocking INBOX must not gate webhook")
	}
}

func TestResolve_EmptyResolution(t *testing.T) {
	res := Resolve(nil, aServiceID, nil, aWebhookURL)
	if !res.Empty() {
		t.Errorf("Resolve() with no profile and no defaults = %+v, want empty", res)
	}
}

// Resolution is a pure function: identical inputs yield identical outputs.
func TestResolve_Deterministic(t *testing.T) {
	p := &profile.Profile{
		Email:            anEmail,
		IsInboxEnabled:   true,
		IsWebhookEnabled: true,
	}
	defaults := &events.DefaultAddresses{Email: "fallback@example.com"}

	first := Resolve(p, aServiceID, defaults, aWebhookURL)
	second := Resolve(p, aServiceID, defaults, aWebhookURL)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve() not deterministic: %+v vs %+v", first, second)
	}
}
