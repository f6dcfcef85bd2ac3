package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ghuser/lostfound/pkg/config"
	"github.com/ghuser/lostfound/pkg/logger"
)

// MinioStore keeps media in a private MinIO/S3 bucket. Objects are streamed
// back through the API, so the bucket never needs a public policy.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to cfg.MinioEndpoint and creates the bucket if it
// does not exist yet.
func NewMinioStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinioBucket, err)
		}
		log.Info("media bucket created", "bucket", cfg.MinioBucket)
	}

	log.Info("minio media store initialized", "endpoint", cfg.MinioEndpoint, "bucket", cfg.MinioBucket)
	return &MinioStore{client: client, bucket: cfg.MinioBucket}, nil
}

// Store uploads data under a fresh key.
func (s *MinioStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	key := NewKey(contentType)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return Reference(key), nil
}

// Open implements Store. The object is stat'ed first so a missing key maps to
// ErrNotFound before any bytes are streamed.
func (s *MinioStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !ValidKey(key) {
		return nil, "", ErrNotFound
	}
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("stat media: %w", err)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("get media: %w", err)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = contentTypeFor(key)
	}
	return obj, contentType, nil
}

// Ping verifies the bucket is reachable.
func (s *MinioStore) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio health check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}
