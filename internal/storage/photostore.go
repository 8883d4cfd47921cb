package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	appconfig "example.com/fleetops/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PhotoStore is an interface for the photo object store
type PhotoStore interface {
	Upload(ctx context.Context, folder, vehicleID, filename, contentType string, body io.Reader) (*StoredPhoto, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// StoredPhoto describes an uploaded photo
type StoredPhoto struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// s3PhotoStore implements PhotoStore against an S3 bucket
type s3PhotoStore struct {
	client *s3.Client
	bucket string
	region string
}

// mockPhotoStore is a no-op implementation for local development
type mockPhotoStore struct{}

// NewPhotoStore creates a photo store. When no bucket is configured a mock
// store is returned so local environments run without object storage.
func NewPhotoStore(ctx context.Context, cfg appconfig.StorageConfig) (PhotoStore, error) {
	if cfg.Bucket == "" {
		return &mockPhotoStore{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &s3PhotoStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Upload stores a photo under {folder}/{vehicleId}/{uuid}.{ext} and returns
// the key with its public URL
func (s *s3PhotoStore) Upload(ctx context.Context, folder, vehicleID, filename, contentType string, body io.Reader) (*StoredPhoto, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	key := fmt.Sprintf("%s/%s/%s.%s", folder, vehicleID, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"vehicleId":  vehicleID,
			"uploadedAt": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	return &StoredPhoto{Key: key, URL: s.URL(key)}, nil
}

// Delete removes a photo by key
func (s *s3PhotoStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

// URL derives the public URL for a stored key
func (s *s3PhotoStore) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// Upload implementation for the mock store
func (m *mockPhotoStore) Upload(ctx context.Context, folder, vehicleID, filename, contentType string, body io.Reader) (*StoredPhoto, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	key := fmt.Sprintf("%s/%s/%s.%s", folder, vehicleID, uuid.New().String(), ext)

	// Drain the body so multipart uploads complete
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}

	return &StoredPhoto{Key: key, URL: m.URL(key)}, nil
}

// Delete implementation for the mock store
func (m *mockPhotoStore) Delete(ctx context.Context, key string) error {
	return nil
}

// URL implementation for the mock store
func (m *mockPhotoStore) URL(key string) string {
	return "mock://" + key
}
