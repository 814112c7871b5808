package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mvdk-dev/playmix/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func cachedPlaylist(t *testing.T) *model.Playlist {
	t.Helper()

	p, err := model.NewPlaylist("Friday Night", "movie night", "user-1")
	if err != nil {
		t.Fatalf("NewPlaylist() unexpected error = %v", err)
	}
	p.CreatedAt = p.CreatedAt.Truncate(time.Microsecond)
	p.UpdatedAt = p.UpdatedAt.Truncate(time.Microsecond)
	return p
}

func TestRedisPlaylistCache_Get_CacheHit(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisPlaylistCache(client)
	ctx := context.Background()

	p := cachedPlaylist(t)
	p.AttachMovie(model.MovieSnapshot{
		ExternalID:  "movie-42",
		Title:       "Heat",
		Director:    "Michael Mann",
		DurationSec: 10200,
		PosterURL:   "http://posters/heat.jpg",
	})
	adID := uuid.New()
	p.Ads = []uuid.UUID{adID, adID}
	p.Order = []uuid.UUID{adID, adID}
	p.DurationSec += 60
	p.Version = 3

	if err := cache.Set(ctx, p, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected playlist, got nil")
	}

	if got.ID != p.ID {
		t.Errorf("ID = %v, want %v", got.ID, p.ID)
	}
	if got.OwnerID != p.OwnerID {
		t.Errorf("OwnerID = %v, want %v", got.OwnerID, p.OwnerID)
	}
	if got.Status != model.StatusPublic {
		t.Errorf("Status = %v, want %v", got.Status, model.StatusPublic)
	}
	if got.MainMovie == nil || got.MainMovie.ExternalID != "movie-42" {
		t.Errorf("MainMovie = %+v, want snapshot movie-42", got.MainMovie)
	}
	if got.MainMovie.DurationSec != 10200 {
		t.Errorf("MainMovie.DurationSec = %d, want 10200", got.MainMovie.DurationSec)
	}
	if len(got.Order) != 2 || got.Order[0] != adID {
		t.Errorf("Order = %v, want [%v %v]", got.Order, adID, adID)
	}
	if got.DurationSec != p.DurationSec {
		t.Errorf("DurationSec = %d, want %d", got.DurationSec, p.DurationSec)
	}
	if got.Version != 3 {
		t.Errorf("Version = %d, want 3", got.Version)
	}
}

func TestRedisPlaylistCache_Get_CacheMiss(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisPlaylistCache(client)

	got, err := cache.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for cache miss, got %v", got)
	}
}

func TestRedisPlaylistCache_Get_NoMovieAttached(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisPlaylistCache(client)
	ctx := context.Background()

	p := cachedPlaylist(t)
	if err := cache.Set(ctx, p, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.MainMovie != nil {
		t.Errorf("MainMovie = %+v, want nil", got.MainMovie)
	}
	if got.DurationSec != 0 {
		t.Errorf("DurationSec = %d, want 0", got.DurationSec)
	}
}

func TestRedisPlaylistCache_Delete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisPlaylistCache(client)
	ctx := context.Background()

	p := cachedPlaylist(t)
	if err := cache.Set(ctx, p, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := cache.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := cache.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}

func TestRedisPlaylistCache_Delete_NonExistent(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisPlaylistCache(client)

	if err := cache.Delete(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Delete failed for non-existent key: %v", err)
	}
}

func TestRedisPlaylistCache_buildKey(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisPlaylistCache(client)
	playlistID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	key := cache.buildKey(playlistID)
	expected := "playlist:550e8400-e29b-41d4-a716-446655440000"

	if key != expected {
		t.Errorf("buildKey() = %v, want %v", key, expected)
	}
}
