package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
)

// PlaylistCache defines the interface for caching playlist aggregates.
// Implementations should handle serialization/deserialization transparently.
type PlaylistCache interface {
	// Get retrieves a playlist from cache by ID.
	// Returns nil, nil if the playlist is not cached (cache miss).
	Get(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error)

	// Set stores a playlist in cache with the specified TTL.
	Set(ctx context.Context, playlist *model.Playlist, ttl time.Duration) error

	// Delete removes a playlist from cache by ID.
	// Returns nil if the playlist was not cached.
	Delete(ctx context.Context, playlistID uuid.UUID) error
}
