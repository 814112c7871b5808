package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
)

// PlaylistRepository defines the interface for playlist persistence.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type PlaylistRepository interface {
	// Create persists a new playlist aggregate.
	// Returns ErrDuplicatePlaylist if the id is already taken.
	Create(ctx context.Context, playlist *model.Playlist) error

	// GetByID retrieves a playlist by its unique identifier.
	// Returns nil and ErrPlaylistNotFound if the playlist does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error)

	// List retrieves all playlists, newest first.
	List(ctx context.Context) ([]*model.Playlist, error)

	// Update persists the aggregate using an optimistic version check: the row
	// is only written when its stored version matches playlist.Version, and the
	// version is bumped on success (reflected back into the aggregate).
	// Returns ErrVersionConflict when a concurrent mutation won the race and
	// ErrPlaylistNotFound when the playlist no longer exists.
	Update(ctx context.Context, playlist *model.Playlist) error

	// Delete removes a playlist. Ads and the remote movie outlive the playlist.
	// Returns ErrPlaylistNotFound if the playlist does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
