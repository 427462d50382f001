package media

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/oakbuilt/renoplan/internal/config"
)

type fakeS3 struct {
	putBucket      string
	putKey         string
	putContentType string
	putBody        string
	presignKey     string
	presignExpiry  time.Duration
	err            error
}

func (f *fakeS3) PutObject(ctx context.Context, bucket, key, contentType string, size int64, r io.Reader) error {
	if f.err != nil {
		return f.err
	}
	f.putBucket = bucket
	f.putKey = key
	f.putContentType = contentType
	data, _ := io.ReadAll(r)
	f.putBody = string(data)
	return nil
}

func (f *fakeS3) PresignedGetObject(ctx context.Context, bucket, key string, expiry time.Duration) (*url.URL, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.presignKey = key
	f.presignExpiry = expiry
	return url.Parse("https://media.example.com/" + key + "?sig=abc")
}

func TestS3UploaderUpload(t *testing.T) {
	fake := &fakeS3{}
	u := &S3Uploader{client: fake, bucket: "renoplan-media", urlExpiry: 15 * time.Minute}

	key, err := u.Upload(context.Background(), "receipts", "hardware.pdf",
		"application/pdf", 11, strings.NewReader("pdf-content"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if fake.putBucket != "renoplan-media" {
		t.Errorf("bucket = %q", fake.putBucket)
	}
	if !strings.HasPrefix(key, "receipts/") || !strings.HasSuffix(key, "/hardware.pdf") {
		t.Errorf("key = %q, want receipts/<ulid>/hardware.pdf", key)
	}
	if fake.putContentType != "application/pdf" {
		t.Errorf("content type = %q", fake.putContentType)
	}
	if fake.putBody != "pdf-content" {
		t.Errorf("body = %q", fake.putBody)
	}
}

func TestS3UploaderDefaultsContentType(t *testing.T) {
	fake := &fakeS3{}
	u := &S3Uploader{client: fake, bucket: "b", urlExpiry: time.Minute}

	if _, err := u.Upload(context.Background(), "documents", "notes", "", 1, strings.NewReader("x")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if fake.putContentType != "application/octet-stream" {
		t.Errorf("content type = %q, want octet-stream fallback", fake.putContentType)
	}
}

func TestS3UploaderPresignedURL(t *testing.T) {
	fake := &fakeS3{}
	u := &S3Uploader{client: fake, bucket: "b", urlExpiry: 15 * time.Minute}

	before := time.Now()
	got, expiry, err := u.PresignedURL(context.Background(), "photos/01ABC/wall.jpg")
	if err != nil {
		t.Fatalf("PresignedURL() error = %v", err)
	}

	if !strings.Contains(got, "photos/01ABC/wall.jpg") {
		t.Errorf("url = %q", got)
	}
	if fake.presignExpiry != 15*time.Minute {
		t.Errorf("expiry passed = %v", fake.presignExpiry)
	}
	if expiry.Before(before.Add(14 * time.Minute)) {
		t.Errorf("returned expiry %v too soon", expiry)
	}
}

func TestUploadErrorIsWrapped(t *testing.T) {
	fake := &fakeS3{err: errors.New("bucket missing")}
	u := &S3Uploader{client: fake, bucket: "b", urlExpiry: time.Minute}

	_, err := u.Upload(context.Background(), "photos", "x.jpg", "", 1, strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "upload media") {
		t.Errorf("error = %v, want wrapped upload error", err)
	}
}

func TestNoopUploaderRejectsEverything(t *testing.T) {
	var u Uploader = &NoopUploader{}

	if _, err := u.Upload(context.Background(), "receipts", "a.pdf", "", 1, strings.NewReader("x")); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Upload error = %v, want ErrNotConfigured", err)
	}
	if _, _, err := u.PresignedURL(context.Background(), "k"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("PresignedURL error = %v, want ErrNotConfigured", err)
	}
}

func TestNewUploaderSelectsNoopWithoutBucket(t *testing.T) {
	u, err := NewUploader(config.MediaConfig{})
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}
	if _, ok := u.(*NoopUploader); !ok {
		t.Errorf("uploader = %T, want *NoopUploader", u)
	}
}
