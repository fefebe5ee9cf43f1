package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"socialhub/internal/config"
)

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string

	ensureOnce sync.Once
	ensureErr  error
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	if cfg.MinIO.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOClient{
		client:    client,
		bucket:    strings.TrimSpace(cfg.MinIO.BucketName),
		region:    cfg.MinIO.Region,
		publicURL: strings.TrimSuffix(cfg.MinIO.PublicURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket on first use.
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	if m.bucket == "" {
		return fmt.Errorf("minio bucket is empty")
	}

	m.ensureOnce.Do(func() {
		exists, err := m.client.BucketExists(ctx, m.bucket)
		if err != nil {
			m.ensureErr = err
			return
		}
		if exists {
			return
		}
		m.ensureErr = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region})
	})

	if m.ensureErr != nil {
		return fmt.Errorf("ensure bucket %q: %w", m.bucket, m.ensureErr)
	}
	return nil
}

func (m *MinIOClient) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, meta map[string]string) (string, error) {
	if err := m.EnsureBucket(ctx); err != nil {
		return "", err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: meta,
	})
	if err != nil {
		return "", fmt.Errorf("put object to minio: %w", err)
	}

	return ObjectURL(m.publicURL, m.bucket, key), nil
}

// Delete removes an object by key or by the URL returned from Put.
func (m *MinIOClient) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	key := ref
	if k, ok := ObjectKey(m.publicURL, m.bucket, ref); ok {
		key = k
	}
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{
		GovernanceBypass: true,
	})
	if err != nil {
		return fmt.Errorf("remove object from minio: %w", err)
	}
	return nil
}

// ObjectURL builds the public URL of an object.
func ObjectURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), bucket, strings.TrimPrefix(key, "/"))
}

// ObjectKey recovers the object key from a URL built by ObjectURL.
func ObjectKey(base, bucket, url string) (string, bool) {
	prefix := strings.TrimSuffix(base, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
