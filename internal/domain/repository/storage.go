package repository

import (
	"context"
	"time"
)

// ObjectStorage defines the interface for ad creative file storage.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type ObjectStorage interface {
	// GeneratePresignedUploadURL creates a presigned URL for direct client
	// upload of a creative file. key is the object path within the bucket
	// (e.g., "creatives/{ad_id}/spot.mp4").
	GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a presigned URL for fetching a
	// creative file. The URL is valid for the specified duration.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete removes a creative object from the storage.
	Delete(ctx context.Context, key string) error

	// Exists checks if a creative object exists in the storage.
	Exists(ctx context.Context, key string) (bool, error)
}
