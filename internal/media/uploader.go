// Package media provides S3-compatible storage for receipt scans,
// project documents and progress photos, plus pre-signed download URL
// generation. When storage is not configured (empty bucket), the
// NoopUploader is used and uploads are rejected with ErrNotConfigured.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/oklog/ulid/v2"

	"github.com/oakbuilt/renoplan/internal/config"
)

// ErrNotConfigured is returned when media storage is not configured.
var ErrNotConfigured = errors.New("media storage not configured")

// Uploader stores media files and generates pre-signed download URLs.
type Uploader interface {
	// Upload stores a file under the given kind ("receipts", "photos",
	// "documents") and returns the object key.
	Upload(ctx context.Context, kind, filename, contentType string, size int64, r io.Reader) (string, error)

	// PresignedURL returns a pre-signed GET URL for a stored object.
	// Returns ErrNotConfigured when storage is not configured.
	PresignedURL(ctx context.Context, key string) (url string, expiry time.Time, err error)
}

// s3Client defines the minimal minio.Client operations used by S3Uploader.
// This interface enables testing with mock implementations.
type s3Client interface {
	PutObject(ctx context.Context, bucket, key, contentType string, size int64, r io.Reader) error
	PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration) (*url.URL, error)
}

// minioClientWrapper wraps *minio.Client to satisfy the s3Client
// interface; minio methods take concrete option types that differ from
// our simplified signatures.
type minioClientWrapper struct {
	client *minio.Client
}

func (w *minioClientWrapper) PutObject(ctx context.Context, bucket, key, contentType string, size int64, r io.Reader) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	_, err := w.client.PutObject(ctx, bucket, key, r, size, opts)
	return err
}

func (w *minioClientWrapper) PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration) (*url.URL, error) {
	return w.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
}

// S3Uploader stores media in S3-compatible storage.
type S3Uploader struct {
	client    s3Client
	bucket    string
	urlExpiry time.Duration
}

// Upload stores the file and returns its object key.
func (u *S3Uploader) Upload(ctx context.Context, kind, filename, contentType string, size int64, r io.Reader) (string, error) {
	key := objectKey(kind, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := u.client.PutObject(ctx, u.bucket, key, contentType, size, r); err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return key, nil
}

// PresignedURL returns a pre-signed GET URL for the object.
func (u *S3Uploader) PresignedURL(ctx context.Context, key string) (string, time.Time, error) {
	presigned, err := u.client.PresignedGetObject(ctx, u.bucket, key, u.urlExpiry)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate pre-signed URL: %w", err)
	}
	expiry := time.Now().Add(u.urlExpiry)
	return presigned.String(), expiry, nil
}

// NoopUploader is used when media storage is not configured.
type NoopUploader struct{}

// Upload returns ErrNotConfigured.
func (u *NoopUploader) Upload(ctx context.Context, kind, filename, contentType string, size int64, r io.Reader) (string, error) {
	return "", ErrNotConfigured
}

// PresignedURL returns ErrNotConfigured.
func (u *NoopUploader) PresignedURL(ctx context.Context, key string) (string, time.Time, error) {
	return "", time.Time{}, ErrNotConfigured
}

// NewUploader creates the appropriate Uploader based on configuration.
// Returns NoopUploader when bucket is empty, S3Uploader otherwise.
func NewUploader(cfg config.MediaConfig) (Uploader, error) {
	if cfg.Bucket == "" {
		return &NoopUploader{}, nil
	}

	useSSL := true
	if cfg.UseSSL != nil {
		useSSL = *cfg.UseSSL
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create S3 client: %w", err)
	}

	return &S3Uploader{
		client:    &minioClientWrapper{client: client},
		bucket:    cfg.Bucket,
		urlExpiry: time.Duration(cfg.URLExpiry),
	}, nil
}

// objectKey builds a collision-free key. Convention:
// {kind}/{ulid}/{filename}
func objectKey(kind, filename string) string {
	return path.Join(kind, ulid.Make().String(), path.Base(filename))
}
