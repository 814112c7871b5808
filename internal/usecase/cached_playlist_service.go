package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/infrastructure/cache"
	"github.com/mvdk-dev/playmix/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

// CachedPlaylistServiceConfig holds configuration for CachedPlaylistService.
type CachedPlaylistServiceConfig struct {
	// CacheTTL is the TTL for cached playlist aggregates.
	CacheTTL time.Duration
}

// DefaultCachedPlaylistServiceConfig returns the default configuration.
func DefaultCachedPlaylistServiceConfig() CachedPlaylistServiceConfig {
	return CachedPlaylistServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedPlaylistService wraps PlaylistService with caching capabilities.
// It implements the decorator pattern to add caching without modifying the
// original service. Only GetPlaylist reads through the cache; mutations
// delegate and then invalidate.
type cachedPlaylistService struct {
	delegate PlaylistService
	cache    cache.PlaylistCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedPlaylistService creates a new CachedPlaylistService wrapping the
// provided PlaylistService.
func NewCachedPlaylistService(
	delegate PlaylistService,
	playlistCache cache.PlaylistCache,
	cfg CachedPlaylistServiceConfig,
) PlaylistService {
	return &cachedPlaylistService{
		delegate: delegate,
		cache:    playlistCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// CreatePlaylist delegates to the underlying service.
// No caching for create operations - the playlist is immediately returned.
func (s *cachedPlaylistService) CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*model.Playlist, error) {
	return s.delegate.CreatePlaylist(ctx, input)
}

// GetPlaylist retrieves a playlist with caching.
// Uses singleflight to prevent cache stampede on concurrent requests for the
// same playlist.
func (s *cachedPlaylistService) GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error) {
	key := playlistID.String()
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getPlaylistWithCache(ctx, playlistID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return result.(*model.Playlist), nil
}

// getPlaylistWithCache implements the cache-aside pattern.
func (s *cachedPlaylistService) getPlaylistWithCache(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error) {
	playlist, err := s.cache.Get(ctx, playlistID)
	if err != nil {
		// Cache failure degrades to a database read
		slog.Warn("cache get failed, falling back to database",
			"playlist_id", playlistID,
			"error", err,
		)
	}

	if playlist != nil {
		return playlist, nil // Cache hit
	}

	playlist, err = s.delegate.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, playlist, s.cacheTTL); err != nil {
		slog.Warn("failed to cache playlist",
			"playlist_id", playlistID,
			"error", err,
		)
	}

	return playlist, nil
}

// ListPlaylists delegates to the underlying service.
// Listings are not cached: the collection changes on every create/delete and
// individual aggregates are already served from cache.
func (s *cachedPlaylistService) ListPlaylists(ctx context.Context) ([]*model.Playlist, error) {
	return s.delegate.ListPlaylists(ctx)
}

// AddMovie delegates and invalidates the cached aggregate on success.
func (s *cachedPlaylistService) AddMovie(ctx context.Context, playlistID uuid.UUID, movieID string) (*model.Playlist, error) {
	playlist, err := s.delegate.AddMovie(ctx, playlistID, movieID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, playlistID)
	return playlist, nil
}

// AddAd delegates and invalidates the cached aggregate on success.
func (s *cachedPlaylistService) AddAd(ctx context.Context, playlistID, adID uuid.UUID) (*model.Playlist, error) {
	playlist, err := s.delegate.AddAd(ctx, playlistID, adID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, playlistID)
	return playlist, nil
}

// Reorder delegates and invalidates the cached aggregate on success.
func (s *cachedPlaylistService) Reorder(ctx context.Context, playlistID, adID uuid.UUID, newPosition int) (*model.Playlist, error) {
	playlist, err := s.delegate.Reorder(ctx, playlistID, adID, newPosition)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, playlistID)
	return playlist, nil
}

// DeletePlaylist delegates and invalidates the cached aggregate on success.
func (s *cachedPlaylistService) DeletePlaylist(ctx context.Context, playlistID uuid.UUID) error {
	if err := s.delegate.DeletePlaylist(ctx, playlistID); err != nil {
		return err
	}
	s.invalidate(ctx, playlistID)
	return nil
}

// invalidate drops the cached aggregate. Invalidation failure is non-critical:
// the entry expires with its TTL and other instances are invalidated through
// the event queue anyway.
func (s *cachedPlaylistService) invalidate(ctx context.Context, playlistID uuid.UUID) {
	if err := s.cache.Delete(ctx, playlistID); err != nil {
		slog.Warn("failed to invalidate playlist cache",
			"playlist_id", playlistID,
			"error", err,
		)
	}
}
