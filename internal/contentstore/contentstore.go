// Package contentstore persists message content to object storage so citizens
// who enabled inbox retention can retrieve their messages later.
package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/berez23/io-functions/internal/dispatch"
	"github.com/berez23/io-functions/internal/events"
)

const contentType = "application/json"

// ObjectPutter is the slice of the S3 API the store depends on.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store writes message content blobs to an S3 bucket.
type Store struct {
	client ObjectPutter
	bucket string
}

// New creates a content store for the given bucket. A non-empty endpoint
// switches the client to path-style addressing for S3-compatible stores.
func New(ctx context.Context, region, bucket, endpoint string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	slog.Info("Content store initialized", "bucket", bucket, "region", region)

	return &Store{client: client, bucket: bucket}, nil
}

// NewWithClient wraps an existing S3 client. Used by tests.
func NewWithClient(client ObjectPutter, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// PersistContent stores the message content as a JSON blob keyed by recipient
// and message identity, and returns the attachment metadata recorded on the
// message.
func (s *Store) PersistContent(ctx context.Context, messageID, recipientID string, content events.MessageContent) (*dispatch.AttachmentMeta, error) {
	blob, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message content: %w", err)
	}

	key := ContentKey(messageID, recipientID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(blob),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store message content: %w", err)
	}

	slog.Debug("Stored message content", "bucket", s.bucket, "key", key)

	return &dispatch.AttachmentMeta{
		ContentType: contentType,
		MediaPath:   key,
	}, nil
}

// ContentKey builds the object key for a message's content blob.
func ContentKey(messageID, recipientID string) string {
	return fmt.Sprintf("messages/%s/%s.json", recipientID, messageID)
}
