// Package usecase contains the application services that coordinate the
// domain model with persistence, the movies gateway, storage and messaging.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
)

// CreatePlaylistInput contains the input parameters for creating a playlist.
type CreatePlaylistInput struct {
	OwnerID     string
	Title       string
	Description string
}

// PlaylistService defines the interface for playlist business logic operations.
type PlaylistService interface {
	// CreatePlaylist creates an empty playlist owned by the caller.
	CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*model.Playlist, error)

	// GetPlaylist retrieves a playlist by ID.
	GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error)

	// ListPlaylists retrieves all playlists, newest first.
	ListPlaylists(ctx context.Context) ([]*model.Playlist, error)

	// AddMovie resolves the movie against the movies service and attaches the
	// snapshot as the playlist's main movie, replacing any previous snapshot.
	// Returns ErrMovieNotFound when the movie does not exist and
	// ErrMovieServiceUnavailable when the movies service cannot be reached.
	AddMovie(ctx context.Context, playlistID uuid.UUID, movieID string) (*model.Playlist, error)

	// AddAd appends an ad from the catalog to the end of the playback order.
	// The same ad may be appended more than once.
	AddAd(ctx context.Context, playlistID, adID uuid.UUID) (*model.Playlist, error)

	// Reorder moves the first occurrence of adID to newPosition in the
	// playback order. Returns ErrAdNotInPlaylist or ErrInvalidPosition on
	// bad input, with the playlist left unchanged.
	Reorder(ctx context.Context, playlistID, adID uuid.UUID, newPosition int) (*model.Playlist, error)

	// DeletePlaylist removes a playlist. Referenced ads and the remote movie
	// are unaffected.
	DeletePlaylist(ctx context.Context, playlistID uuid.UUID) error
}

type playlistService struct {
	repo   repository.PlaylistRepository
	ads    repository.AdRepository
	movies repository.MovieGateway
	events repository.EventQueue
}

// NewPlaylistService creates a new PlaylistService instance.
func NewPlaylistService(
	repo repository.PlaylistRepository,
	ads repository.AdRepository,
	movies repository.MovieGateway,
	events repository.EventQueue,
) PlaylistService {
	return &playlistService{
		repo:   repo,
		ads:    ads,
		movies: movies,
		events: events,
	}
}

// CreatePlaylist creates an empty playlist owned by the caller.
func (s *playlistService) CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*model.Playlist, error) {
	playlist, err := model.NewPlaylist(input.Title, input.Description, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}

	s.announce(ctx, playlist.ID, repository.EventPlaylistCreated)
	return playlist, nil
}

// GetPlaylist retrieves a playlist by ID.
func (s *playlistService) GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*model.Playlist, error) {
	return s.repo.GetByID(ctx, playlistID)
}

// ListPlaylists retrieves all playlists, newest first.
func (s *playlistService) ListPlaylists(ctx context.Context) ([]*model.Playlist, error) {
	return s.repo.List(ctx)
}

// AddMovie resolves and attaches a movie snapshot.
// The movie is resolved before the playlist is mutated: resolution failures
// leave the stored aggregate untouched.
func (s *playlistService) AddMovie(ctx context.Context, playlistID uuid.UUID, movieID string) (*model.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.movies.FetchMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	playlist.AttachMovie(*snapshot)

	if err := s.repo.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}

	s.announce(ctx, playlist.ID, repository.EventPlaylistUpdated)
	return playlist, nil
}

// AddAd appends a catalog ad to the playlist.
func (s *playlistService) AddAd(ctx context.Context, playlistID, adID uuid.UUID) (*model.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	ad, err := s.ads.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	playlist.AppendAd(ad)

	if err := s.repo.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}

	s.announce(ctx, playlist.ID, repository.EventPlaylistUpdated)
	return playlist, nil
}

// Reorder moves an ad entry within the playback order.
// The ad is checked against the catalog first so a stale reference fails
// with ErrAdNotFound rather than silently reordering a dangling id.
func (s *playlistService) Reorder(ctx context.Context, playlistID, adID uuid.UUID, newPosition int) (*model.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ads.GetByID(ctx, adID); err != nil {
		return nil, err
	}

	if err := playlist.MoveEntry(adID, newPosition); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}

	s.announce(ctx, playlist.ID, repository.EventPlaylistUpdated)
	return playlist, nil
}

// DeletePlaylist removes a playlist.
func (s *playlistService) DeletePlaylist(ctx context.Context, playlistID uuid.UUID) error {
	if err := s.repo.Delete(ctx, playlistID); err != nil {
		return err
	}

	s.announce(ctx, playlistID, repository.EventPlaylistDeleted)
	return nil
}

// announce publishes a playlist event. Publishing is best-effort: the
// mutation has already been committed, so a publish failure is logged and
// swallowed rather than rolled back.
func (s *playlistService) announce(ctx context.Context, playlistID uuid.UUID, kind repository.EventKind) {
	event := repository.PlaylistEvent{
		PlaylistID: playlistID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishPlaylistEvent(ctx, event); err != nil {
		slog.Warn("failed to publish playlist event",
			"playlist_id", playlistID,
			"kind", kind,
			"error", err,
		)
	}
}
