package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
)

// mockPlaylistRepository provides a configurable mock for PlaylistRepository.
type mockPlaylistRepository struct {
	createFn  func(ctx context.Context, playlist *model.Playlist) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Playlist, error)
	listFn    func(ctx context.Context) ([]*model.Playlist, error)
	updateFn  func(ctx context.Context, playlist *model.Playlist) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPlaylistRepository) List(ctx context.Context) ([]*model.Playlist, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPlaylistRepository) Update(ctx context.Context, playlist *model.Playlist) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockAdRepository provides a configurable mock for AdRepository.
type mockAdRepository struct {
	createFn  func(ctx context.Context, ad *model.Ad) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Ad, error)
	listFn    func(ctx context.Context, advertiser string) ([]*model.Ad, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAdRepository) Create(ctx context.Context, ad *model.Ad) error {
	if m.createFn != nil {
		return m.createFn(ctx, ad)
	}
	return nil
}

func (m *mockAdRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ad, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAdRepository) List(ctx context.Context, advertiser string) ([]*model.Ad, error) {
	if m.listFn != nil {
		return m.listFn(ctx, advertiser)
	}
	return nil, nil
}

func (m *mockAdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockMovieGateway provides a configurable mock for MovieGateway.
type mockMovieGateway struct {
	fetchMovieFn func(ctx context.Context, externalID string) (*model.MovieSnapshot, error)
}

func (m *mockMovieGateway) FetchMovie(ctx context.Context, externalID string) (*model.MovieSnapshot, error) {
	if m.fetchMovieFn != nil {
		return m.fetchMovieFn(ctx, externalID)
	}
	return nil, nil
}

// mockEventQueue provides a configurable mock for EventQueue.
type mockEventQueue struct {
	publishPlaylistEventFn  func(ctx context.Context, event repository.PlaylistEvent) error
	consumePlaylistEventsFn func(ctx context.Context, handler func(event repository.PlaylistEvent) error) error
}

func (m *mockEventQueue) PublishPlaylistEvent(ctx context.Context, event repository.PlaylistEvent) error {
	if m.publishPlaylistEventFn != nil {
		return m.publishPlaylistEventFn(ctx, event)
	}
	return nil
}

func (m *mockEventQueue) ConsumePlaylistEvents(ctx context.Context, handler func(event repository.PlaylistEvent) error) error {
	if m.consumePlaylistEventsFn != nil {
		return m.consumePlaylistEventsFn(ctx, handler)
	}
	return nil
}

func (m *mockEventQueue) Close() error {
	return nil
}

// mockObjectStorage provides a configurable mock for ObjectStorage.
type mockObjectStorage struct {
	generatePresignedUploadURLFn   func(ctx context.Context, key string, expiry time.Duration) (string, error)
	generatePresignedDownloadURLFn func(ctx context.Context, key string, expiry time.Duration) (string, error)
	deleteFn                       func(ctx context.Context, key string) error
	existsFn                       func(ctx context.Context, key string) (bool, error)
}

func (m *mockObjectStorage) GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.generatePresignedUploadURLFn != nil {
		return m.generatePresignedUploadURLFn(ctx, key, expiry)
	}
	return "http://example.com/upload", nil
}

func (m *mockObjectStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.generatePresignedDownloadURLFn != nil {
		return m.generatePresignedDownloadURLFn(ctx, key, expiry)
	}
	return "http://example.com/download", nil
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

// mockPlaylistCache provides a configurable mock for PlaylistCache.
type mockPlaylistCache struct {
	getFn    func(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error)
	setFn    func(ctx context.Context, playlist *model.Playlist, ttl time.Duration) error
	deleteFn func(ctx context.Context, playlistID uuid.UUID) error
}

func (m *mockPlaylistCache) Get(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error) {
	if m.getFn != nil {
		return m.getFn(ctx, playlistID)
	}
	return nil, nil
}

func (m *mockPlaylistCache) Set(ctx context.Context, playlist *model.Playlist, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, playlist, ttl)
	}
	return nil
}

func (m *mockPlaylistCache) Delete(ctx context.Context, playlistID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, playlistID)
	}
	return nil
}
