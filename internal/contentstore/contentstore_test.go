package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/berez23/io-functions/internal/events"
)

type fakeObjectPutter struct {
	inputs []*s3.PutObjectInput
	err    error
}

func (f *fakeObjectPutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPersistContent_WritesJSONBlob(t *testing.T) {
	putter := &fakeObjectPutter{}
	store := NewWithClient(putter, "messages-bucket")

	content := events.MessageContent{
		Subject:  "Tax deadline reminder",
		Markdown: "Your payment is due on the 16th.",
	}

	meta, err := store.PersistContent(context.Background(), "m123", "FRLFRC74E04B157I", content)
	if err != nil {
		t.Fatalf("PersistContent() error = %v, want success", err)
	}

	if len(putter.inputs) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(putter.inputs))
	}
	input := putter.inputs[0]
	if got := *input.Bucket; got != "messages-bucket" {
		t.Errorf("bucket = %q, want %q", got, "messages-bucket")
	}
	wantKey := "messages/FRLFRC74E04B157I/m123.json"
	if got := *input.Key; got != wantKey {
		t.Errorf("key = %q, want %q", got, wantKey)
	}
	if got := *input.ContentType; got != "application/json" {
		t.Errorf("content type = %q, want application/json", got)
	}

	body, err := io.ReadAll(input.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var stored events.MessageContent
	if err := json.Unmarshal(body, &stored); err != nil {
		t.Fatalf("stored blob is not valid JSON: %v", err)
	}
	if stored.Subject != content.Subject || stored.Markdown != content.Markdown {
		t.Errorf("stored content = %+v, want %+v", stored, content)
	}

	if meta == nil {
		t.Fatal("meta = nil, want attachment metadata")
	}
	if meta.MediaPath != wantKey {
		t.Errorf("media path = %q, want %q", meta.MediaPath, wantKey)
	}
	if meta.ContentType != "application/json" {
		t.Errorf("meta content type = %q, want application/json", meta.ContentType)
	}
}

func TestPersistContent_PutErrorIsWrapped(t *testing.T) {
	putErr := errors.New("access denied")
	putter := &fakeObjectPutter{err: putErr}
	store := NewWithClient(putter, "messages-bucket")

	meta, err := store.PersistContent(context.Background(), "m123", "FRLFRC74E04B157I", events.MessageContent{
		Subject:  "Tax deadline reminder",
		Markdown: "Your payment is due on the 16th.",
	})
	if err == nil {
		t.Fatal("PersistContent() error = nil, want failure")
	}
	if !errors.Is(err, putErr) {
		t.Errorf("error %v does not wrap the client error", err)
	}
	if meta != nil {
		t.Errorf("meta = %+v, want nil on failure", meta)
	}
}

func TestContentKey(t *testing.T) {
	tests := []struct {
		name        string
		messageID   string
		recipientID string
		want        string
	}{
		{
			name:        "standard key",
			messageID:   "m123",
			recipientID: "FRLFRC74E04B157I",
			want:        "messages/FRLFRC74E04B157I/m123.json",
		},
		{
			name:        "keys are distinct per message",
			messageID:   "m124",
			recipientID: "FRLFRC74E04B157I",
			want:        "messages/FRLFRC74E04B157I/m124.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentKey(tt.messageID, tt.recipientID); got != tt.want {
				t.Errorf("ContentKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
