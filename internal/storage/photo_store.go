package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// PhotoStore is the object-storage capability the profile repository
// delegates photo blobs to. Objects are keyed by profile reference.
type PhotoStore interface {
	Upload(ctx context.Context, key string, blob io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type gcsPhotoStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSPhotoStore opens a Google Cloud Storage backed photo store. Uploaded
// objects are made public and addressed by their public URL.
func NewGCSPhotoStore(ctx context.Context, bucket string) (PhotoStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &gcsPhotoStore{client: client, bucket: bucket}, nil
}

func (s *gcsPhotoStore) Upload(ctx context.Context, key string, blob io.Reader, contentType string) (string, error) {
	object := s.client.Bucket(s.bucket).Object(key)

	writer := object.NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, blob); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("upload photo %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("upload photo %s: %w", key, err)
	}

	if err := object.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("publish photo %s: %w", key, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}

func (s *gcsPhotoStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete photo %s: %w", key, err)
	}
	return nil
}
