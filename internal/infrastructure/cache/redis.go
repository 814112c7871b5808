package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/infrastructure/metrics"
)

const (
	// playlistCacheKeyPrefix is the prefix for playlist cache keys in Redis.
	playlistCacheKeyPrefix = "playlist:"
)

// movieJSON is the JSON representation of a MovieSnapshot for caching.
type movieJSON struct {
	ExternalID  string `json:"external_id"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	DurationSec int    `json:"duration_sec"`
	PosterURL   string `json:"poster_url"`
}

// playlistJSON is the JSON representation of a Playlist for caching.
// Using an explicit struct avoids coupling to domain model's JSON tags.
type playlistJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OwnerID     string     `json:"owner_id"`
	Status      string     `json:"status"`
	MainMovie   *movieJSON `json:"main_movie,omitempty"`
	Ads         []string   `json:"ads"`
	Order       []string   `json:"order"`
	DurationSec int        `json:"duration_sec"`
	Version     int64      `json:"version"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

// RedisPlaylistCache implements PlaylistCache using Redis as the backing store.
type RedisPlaylistCache struct {
	client *redis.Client
}

// NewRedisPlaylistCache creates a new Redis-backed playlist cache.
func NewRedisPlaylistCache(client *redis.Client) *RedisPlaylistCache {
	return &RedisPlaylistCache{
		client: client,
	}
}

// Get retrieves a playlist from Redis cache.
// Returns nil, nil on cache miss.
func (c *RedisPlaylistCache) Get(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error) {
	key := c.buildKey(playlistID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
			return nil, nil // Cache miss
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	playlist, err := c.deserialize(data)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		return nil, fmt.Errorf("deserialize playlist: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
	return playlist, nil
}

// Set stores a playlist in Redis cache with the specified TTL.
func (c *RedisPlaylistCache) Set(ctx context.Context, playlist *model.Playlist, ttl time.Duration) error {
	key := c.buildKey(playlist.ID)

	data, err := c.serialize(playlist)
	if err != nil {
		return fmt.Errorf("serialize playlist: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	return nil
}

// Delete removes a playlist from Redis cache.
func (c *RedisPlaylistCache) Delete(ctx context.Context, playlistID uuid.UUID) error {
	key := c.buildKey(playlistID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	return nil
}

// buildKey constructs the Redis key for a playlist.
func (c *RedisPlaylistCache) buildKey(playlistID uuid.UUID) string {
	return playlistCacheKeyPrefix + playlistID.String()
}

func (c *RedisPlaylistCache) serialize(playlist *model.Playlist) ([]byte, error) {
	p := playlistJSON{
		ID:          playlist.ID.String(),
		Title:       playlist.Title,
		Description: playlist.Description,
		OwnerID:     playlist.OwnerID,
		Status:      playlist.Status.String(),
		Ads:         uuidsToStrings(playlist.Ads),
		Order:       uuidsToStrings(playlist.Order),
		DurationSec: playlist.DurationSec,
		Version:     playlist.Version,
		CreatedAt:   playlist.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   playlist.UpdatedAt.Format(time.RFC3339Nano),
	}
	if playlist.MainMovie != nil {
		p.MainMovie = &movieJSON{
			ExternalID:  playlist.MainMovie.ExternalID,
			Title:       playlist.MainMovie.Title,
			Director:    playlist.MainMovie.Director,
			DurationSec: playlist.MainMovie.DurationSec,
			PosterURL:   playlist.MainMovie.PosterURL,
		}
	}
	return json.Marshal(p)
}

func (c *RedisPlaylistCache) deserialize(data []byte) (*model.Playlist, error) {
	var p playlistJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, fmt.Errorf("parse playlist ID: %w", err)
	}

	ads, err := stringsToUUIDs(p.Ads)
	if err != nil {
		return nil, fmt.Errorf("parse ad references: %w", err)
	}

	order, err := stringsToUUIDs(p.Order)
	if err != nil {
		return nil, fmt.Errorf("parse order references: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	playlist := &model.Playlist{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Status:      model.Status(p.Status),
		Ads:         ads,
		Order:       order,
		DurationSec: p.DurationSec,
		Version:     p.Version,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if p.MainMovie != nil {
		playlist.MainMovie = &model.MovieSnapshot{
			ExternalID:  p.MainMovie.ExternalID,
			Title:       p.MainMovie.Title,
			Director:    p.MainMovie.Director,
			DurationSec: p.MainMovie.DurationSec,
			PosterURL:   p.MainMovie.PosterURL,
		}
	}
	return playlist, nil
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToUUIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
