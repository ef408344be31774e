package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDB_FindProfileByRecipient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock: %v", err)
	}
	defer db.Close()

	d := NewDBWithConn(db)
	ctx := context.Background()

	columns := []string{"recipient_id", "email", "is_inbox_enabled", "is_webhook_enabled", "blocked_channels", "version"}

	t.Run("profile found with email and blocked channels", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles").
			WithArgs("FRLFRC74E04B157I").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("FRLFRC74E04B157I", "citizen@example.com", true, true, `{"agid":["WEBHOOK"]}`, 3))

		p, err := d.FindProfileByRecipient(ctx, "FRLFRC74E04B157I")
		if err != nil {
			t.Fatalf("FindProfileByRecipient() error = %v", err)
		}
		if p == nil {
			t.Fatal("FindProfileByRecipient() returned nil profile")
		}
		if p.Email != "citizen@example.com" {
			t.Errorf("Email = %q, want citizen@example.com", p.Email)
		}
		if !p.IsInboxEnabled || !p.IsWebhookEnabled {
			t.Error("expected inbox and webhook enabled")
		}
		if got := p.BlockedInboxOrChannels["agid"]; len(got) != 1 || got[0] != "WEBHOOK" {
			t.Errorf("BlockedInboxOrChannels[agid] = %v, want [WEBHOOK]", got)
		}
		if p.Version != 3 {
			t.Errorf("Version = %d, want 3", p.Version)
		}
	})

	t.Run("profile found with null email", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles").
			WithArgs("FRLFRC74E04B157I").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("FRLFRC74E04B157I", nil, true, false, nil, 1))

		p, err := d.FindProfileByRecipient(ctx, "FRLFRC74E04B157I")
		if err != nil {
			t.Fatalf("FindProfileByRecipient() error = %v", err)
		}
		if p.Email != "" {
			t.Errorf("Email = %q, want empty", p.Email)
		}
		if p.BlockedInboxOrChannels == nil || len(p.BlockedInboxOrChannels) != 0 {
			t.Errorf("BlockedInboxOrChannels = %v, want empty map", p.BlockedInboxOrChannels)
		}
	})

	t.Run("malformed blocked channels degrades to empty map", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles").
			WithArgs("FRLFRC74E04B157I").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("FRLFRC74E04B157I", "citizen@example.com", true, false, `not-json`, 1))

		p, err := d.FindProfileByRecipient(ctx, "FRLFRC74E04B157I")
		if err != nil {
			t.Fatalf("FindProfileByRecipient() error = %v", err)
		}
		if len(p.BlockedInboxOrChannels) != 0 {
			t.Errorf("BlockedInboxOrChannels = %v, want empty map", p.BlockedInboxOrChannels)
		}
	})

	t.Run("no profile returns nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles").
			WithArgs("MSSGPP80A01H501U").
			WillReturnRows(sqlmock.NewRows(columns))

		p, err := d.FindProfileByRecipient(ctx, "MSSGPP80A01H501U")
		if err != nil {
			t.Fatalf("FindProfileByRecipient() error = %v", err)
		}
		if p != nil {
			t.Errorf("FindProfileByRecipient() = %v, want nil", p)
		}
	})

	t.Run("query error is propagated", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles").
			WithArgs("FRLFRC74E04B157I").
			WillReturnError(errors.New("connection reset"))

		_, err := d.FindProfileByRecipient(ctx, "FRLFRC74E04B157I")
		if err == nil {
			t.Fatal("FindProfileByRecipient() error = nil, want error")
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
