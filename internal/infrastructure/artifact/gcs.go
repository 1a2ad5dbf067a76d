package artifact

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/ressKim-io/CerviGuard/internal/infrastructure/config"
)

// GCSSource reads artifacts from a Google Cloud Storage bucket
type GCSSource struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSSourceFromConfig creates a storage client from application default credentials
func NewGCSSourceFromConfig(ctx context.Context, cfg *config.ModelsConfig) (*GCSSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSSource{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Open streams gs://bucket/prefix/name
func (s *GCSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(objectKey(s.prefix, name)).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", s.bucket, objectKey(s.prefix, name), err)
	}
	return r, nil
}

// Close releases the storage client
func (s *GCSSource) Close() error {
	return s.client.Close()
}

func (s *GCSSource) String() string {
	return "gs://" + objectKey(s.bucket, s.prefix)
}
