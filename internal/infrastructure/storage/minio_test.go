package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/mvdk-dev/playmix/internal/domain/repository"
)

// mockMinioClient implements minioClient interface for testing.
type mockMinioClient struct {
	bucketExistsFunc       func(ctx context.Context, bucketName string) (bool, error)
	presignedPutObjectFunc func(ctx context.Context, bucketName, objectName string, expiry time.Duration) (*url.URL, error)
	presignedGetObjectFunc func(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
	removeObjectFunc       func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	statObjectFunc         func(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

func (m *mockMinioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if m.bucketExistsFunc != nil {
		return m.bucketExistsFunc(ctx, bucketName)
	}
	return true, nil
}

func (m *mockMinioClient) PresignedPutObject(ctx context.Context, bucketName, objectName string, expiry time.Duration) (*url.URL, error) {
	if m.presignedPutObjectFunc != nil {
		return m.presignedPutObjectFunc(ctx, bucketName, objectName, expiry)
	}
	return url.Parse("http://minio.local/" + bucketName + "/" + objectName)
}

func (m *mockMinioClient) PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error) {
	if m.presignedGetObjectFunc != nil {
		return m.presignedGetObjectFunc(ctx, bucketName, objectName, expiry, reqParams)
	}
	return url.Parse("http://minio.local/" + bucketName + "/" + objectName)
}

func (m *mockMinioClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	if m.removeObjectFunc != nil {
		return m.removeObjectFunc(ctx, bucketName, objectName, opts)
	}
	return nil
}

func (m *mockMinioClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if m.statObjectFunc != nil {
		return m.statObjectFunc(ctx, bucketName, objectName, opts)
	}
	return minio.ObjectInfo{Key: objectName}, nil
}

func newTestStorageClient(t *testing.T, mock *mockMinioClient) *Client {
	t.Helper()
	client, err := newClientWithMinioClient(context.Background(), mock, mock, "creatives")
	if err != nil {
		t.Fatalf("newClientWithMinioClient() unexpected error = %v", err)
	}
	return client
}

func TestNewClientWithMinioClient_BucketVerification(t *testing.T) {
	tests := []struct {
		name    string
		mock    *mockMinioClient
		wantErr error
	}{
		{
			name:    "bucket exists",
			mock:    &mockMinioClient{},
			wantErr: nil,
		},
		{
			name: "bucket missing",
			mock: &mockMinioClient{
				bucketExistsFunc: func(ctx context.Context, bucketName string) (bool, error) {
					return false, nil
				},
			},
			wantErr: repository.ErrBucketNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newClientWithMinioClient(context.Background(), tt.mock, tt.mock, "creatives")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("newClientWithMinioClient() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("newClientWithMinioClient() unexpected error = %v", err)
			}
		})
	}
}

func TestNewClientWithMinioClient_BucketCheckError(t *testing.T) {
	mock := &mockMinioClient{
		bucketExistsFunc: func(ctx context.Context, bucketName string) (bool, error) {
			return false, errors.New("connection refused")
		},
	}

	_, err := newClientWithMinioClient(context.Background(), mock, mock, "creatives")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to check bucket existence") {
		t.Errorf("error = %v, should mention bucket existence check", err)
	}
}

func TestClient_GeneratePresignedUploadURL(t *testing.T) {
	var gotBucket, gotKey string
	var gotExpiry time.Duration
	mock := &mockMinioClient{
		presignedPutObjectFunc: func(ctx context.Context, bucketName, objectName string, expiry time.Duration) (*url.URL, error) {
			gotBucket = bucketName
			gotKey = objectName
			gotExpiry = expiry
			return url.Parse("http://minio.local/creatives/ad-1/spot.mp4?signature=abc")
		},
	}

	client := newTestStorageClient(t, mock)
	got, err := client.GeneratePresignedUploadURL(context.Background(), "creatives/ad-1/spot.mp4", 15*time.Minute)
	if err != nil {
		t.Fatalf("GeneratePresignedUploadURL() unexpected error = %v", err)
	}

	if gotBucket != "creatives" {
		t.Errorf("bucket = %v, want creatives", gotBucket)
	}
	if gotKey != "creatives/ad-1/spot.mp4" {
		t.Errorf("key = %v, want creatives/ad-1/spot.mp4", gotKey)
	}
	if gotExpiry != 15*time.Minute {
		t.Errorf("expiry = %v, want 15m", gotExpiry)
	}
	if !strings.Contains(got, "signature=abc") {
		t.Errorf("URL = %v, want signed URL", got)
	}
}

func TestClient_GeneratePresignedUploadURL_Error(t *testing.T) {
	mock := &mockMinioClient{
		presignedPutObjectFunc: func(ctx context.Context, bucketName, objectName string, expiry time.Duration) (*url.URL, error) {
			return nil, errors.New("access denied")
		},
	}

	client := newTestStorageClient(t, mock)
	_, err := client.GeneratePresignedUploadURL(context.Background(), "creatives/ad-1/spot.mp4", time.Minute)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestClient_GeneratePresignedDownloadURL(t *testing.T) {
	mock := &mockMinioClient{
		presignedGetObjectFunc: func(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error) {
			return url.Parse("http://minio.local/creatives/ad-1/spot.mp4?signature=xyz")
		},
	}

	client := newTestStorageClient(t, mock)
	got, err := client.GeneratePresignedDownloadURL(context.Background(), "creatives/ad-1/spot.mp4", time.Hour)
	if err != nil {
		t.Fatalf("GeneratePresignedDownloadURL() unexpected error = %v", err)
	}
	if !strings.Contains(got, "signature=xyz") {
		t.Errorf("URL = %v, want signed URL", got)
	}
}

func TestClient_GeneratePresignedURLs_UsePresignedClient(t *testing.T) {
	// Upload and download URLs must come from the presigned client, not the
	// internal one, so public endpoints produce externally valid URLs.
	internal := &mockMinioClient{
		presignedPutObjectFunc: func(ctx context.Context, bucketName, objectName string, expiry time.Duration) (*url.URL, error) {
			t.Error("internal client used for presigned upload URL")
			return nil, errors.New("wrong client")
		},
		presignedGetObjectFunc: func(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error) {
			t.Error("internal client used for presigned download URL")
			return nil, errors.New("wrong client")
		},
	}
	public := &mockMinioClient{}

	client, err := newClientWithMinioClient(context.Background(), internal, public, "creatives")
	if err != nil {
		t.Fatalf("newClientWithMinioClient() unexpected error = %v", err)
	}

	if _, err := client.GeneratePresignedUploadURL(context.Background(), "k", time.Minute); err != nil {
		t.Errorf("GeneratePresignedUploadURL() unexpected error = %v", err)
	}
	if _, err := client.GeneratePresignedDownloadURL(context.Background(), "k", time.Minute); err != nil {
		t.Errorf("GeneratePresignedDownloadURL() unexpected error = %v", err)
	}
}

func TestClient_Delete(t *testing.T) {
	var deletedKey string
	mock := &mockMinioClient{
		removeObjectFunc: func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
			deletedKey = objectName
			return nil
		},
	}

	client := newTestStorageClient(t, mock)
	if err := client.Delete(context.Background(), "creatives/ad-1/spot.mp4"); err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}
	if deletedKey != "creatives/ad-1/spot.mp4" {
		t.Errorf("deleted key = %v, want creatives/ad-1/spot.mp4", deletedKey)
	}
}

func TestClient_Exists(t *testing.T) {
	tests := []struct {
		name    string
		statErr error
		want    bool
		wantErr bool
	}{
		{
			name:    "object exists",
			statErr: nil,
			want:    true,
		},
		{
			name:    "object missing",
			statErr: minio.ErrorResponse{Code: "NoSuchKey"},
			want:    false,
		},
		{
			name:    "stat error",
			statErr: errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockMinioClient{
				statObjectFunc: func(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
					return minio.ObjectInfo{}, tt.statErr
				},
			}

			client := newTestStorageClient(t, mock)
			got, err := client.Exists(context.Background(), "creatives/ad-1/spot.mp4")

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Exists() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_Bucket(t *testing.T) {
	client := newTestStorageClient(t, &mockMinioClient{})
	if client.Bucket() != "creatives" {
		t.Errorf("Bucket() = %v, want creatives", client.Bucket())
	}
}
