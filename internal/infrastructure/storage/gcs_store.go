package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"

	"github.com/rabnifoundation/rabni-api/pkg/helpers"
)

var ErrUnavailable = errors.New("object storage not configured")

// GCSStore keeps uploaded media in a single public bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", ErrUnavailable
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

// Delete removes the object a public URL points at. URLs outside the bucket
// are left alone.
func (s *GCSStore) Delete(ctx context.Context, url string) error {
	if s.client == nil || s.bucket == "" {
		return ErrUnavailable
	}
	p, ok := helpers.ObjectPathFromURL(s.bucket, url)
	if !ok {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, p)
}
