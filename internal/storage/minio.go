// Package storage provides S3-compatible asset storage using MinIO.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pastevault/backend/internal/config"
	"github.com/pastevault/backend/internal/services"
)

// MinioStore implements services.AssetStorage against a MinIO bucket. Object
// paths are namespaced per asset class ("avatars/<name>").
type MinioStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinioStore{
		client:   client,
		bucket:   cfg.MinioBucket,
		endpoint: cfg.MinioEndpoint,
		useSSL:   cfg.MinioUseSSL,
	}, nil
}

func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Write stores the asset and returns its bucket-relative path. The caller
// bounds ctx; expiry surfaces as services.ErrStorageFailure.
func (s *MinioStore) Write(ctx context.Context, namespace, name string, data []byte, contentType string) (string, error) {
	objectName := namespace + "/" + name
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", services.ErrStorageFailure, err)
	}
	return objectName, nil
}

func (s *MinioStore) PublicURL(path string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   s.endpoint,
		Path:   "/" + s.bucket + "/" + path,
	}).String()
}
