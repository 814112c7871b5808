package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
	"github.com/mvdk-dev/playmix/internal/infrastructure/metrics"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlaylistRepository implements repository.PlaylistRepository using PostgreSQL.
//
// The aggregate's ad references are stored as text[] columns (ads, ad_order)
// and the movie snapshot is flattened into nullable movie_* columns. The
// version column backs the optimistic concurrency check in Update.
type PlaylistRepository struct {
	db DBTX
}

// NewPlaylistRepository creates a new PlaylistRepository instance.
func NewPlaylistRepository(db DBTX) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

const playlistColumns = `
	id, title, description, owner_id, status,
	movie_external_id, movie_title, movie_director, movie_duration_sec, movie_poster_url,
	ads, ad_order, duration_sec, version, created_at, updated_at`

// Create persists a new playlist aggregate.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	const query = `
		INSERT INTO playlists (
			id, title, description, owner_id, status,
			movie_external_id, movie_title, movie_director, movie_duration_sec, movie_poster_url,
			ads, ad_order, duration_sec, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	snap := flattenSnapshot(playlist.MainMovie)

	_, err := r.db.Exec(ctx, query,
		playlist.ID,
		playlist.Title,
		nullString(playlist.Description),
		playlist.OwnerID,
		playlist.Status.String(),
		snap.externalID,
		snap.title,
		snap.director,
		snap.durationSec,
		snap.posterURL,
		uuidsToStrings(playlist.Ads),
		uuidsToStrings(playlist.Order),
		playlist.DurationSec,
		playlist.Version,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicatePlaylist
		}
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TablePlaylists).Inc()
	return nil
}

// GetByID retrieves a playlist by its unique identifier.
func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE id = $1`

	playlist, err := scanPlaylist(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist by ID: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TablePlaylists).Inc()
	return playlist, nil
}

// List retrieves all playlists, newest first.
func (r *PlaylistRepository) List(ctx context.Context) ([]*model.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*model.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlists: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TablePlaylists).Inc()
	return playlists, nil
}

// Update persists the aggregate guarded by an optimistic version check.
// The version the aggregate was loaded with must still match the row; the
// stored version is bumped on success and reflected into the aggregate.
func (r *PlaylistRepository) Update(ctx context.Context, playlist *model.Playlist) error {
	const query = `
		UPDATE playlists
		SET title = $2, description = $3, status = $4,
			movie_external_id = $5, movie_title = $6, movie_director = $7,
			movie_duration_sec = $8, movie_poster_url = $9,
			ads = $10, ad_order = $11, duration_sec = $12,
			version = version + 1, updated_at = $13
		WHERE id = $1 AND version = $14
	`

	snap := flattenSnapshot(playlist.MainMovie)
	playlist.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		playlist.ID,
		playlist.Title,
		nullString(playlist.Description),
		playlist.Status.String(),
		snap.externalID,
		snap.title,
		snap.director,
		snap.durationSec,
		snap.posterURL,
		uuidsToStrings(playlist.Ads),
		uuidsToStrings(playlist.Order),
		playlist.DurationSec,
		playlist.UpdatedAt,
		playlist.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either a concurrent writer bumped the version or the row is gone.
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM playlists WHERE id = $1)`, playlist.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check playlist existence: %w", err)
		}
		if exists {
			return repository.ErrVersionConflict
		}
		return repository.ErrPlaylistNotFound
	}

	playlist.Version++
	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TablePlaylists).Inc()
	return nil
}

// Delete removes a playlist.
func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM playlists WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPlaylistNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TablePlaylists).Inc()
	return nil
}

// flatSnapshot carries the nullable column values of a movie snapshot.
type flatSnapshot struct {
	externalID  *string
	title       *string
	director    *string
	durationSec *int
	posterURL   *string
}

func flattenSnapshot(s *model.MovieSnapshot) flatSnapshot {
	if s == nil {
		return flatSnapshot{}
	}
	return flatSnapshot{
		externalID:  &s.ExternalID,
		title:       nullString(s.Title),
		director:    nullString(s.Director),
		durationSec: &s.DurationSec,
		posterURL:   nullString(s.PosterURL),
	}
}

// scanPlaylist scans a single row into a Playlist aggregate.
// Works for both pgx.Row and pgx.Rows.
func scanPlaylist(row pgx.Row) (*model.Playlist, error) {
	var (
		playlist    model.Playlist
		description *string
		status      string
		snap        flatSnapshot
		ads         []string
		order       []string
	)

	err := row.Scan(
		&playlist.ID,
		&playlist.Title,
		&description,
		&playlist.OwnerID,
		&status,
		&snap.externalID,
		&snap.title,
		&snap.director,
		&snap.durationSec,
		&snap.posterURL,
		&ads,
		&order,
		&playlist.DurationSec,
		&playlist.Version,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	playlist.Status = model.Status(status)
	if description != nil {
		playlist.Description = *description
	}

	if snap.externalID != nil {
		movie := &model.MovieSnapshot{ExternalID: *snap.externalID}
		if snap.title != nil {
			movie.Title = *snap.title
		}
		if snap.director != nil {
			movie.Director = *snap.director
		}
		if snap.durationSec != nil {
			movie.DurationSec = *snap.durationSec
		}
		if snap.posterURL != nil {
			movie.PosterURL = *snap.posterURL
		}
		playlist.MainMovie = movie
	}

	if playlist.Ads, err = stringsToUUIDs(ads); err != nil {
		return nil, fmt.Errorf("invalid ad reference: %w", err)
	}
	if playlist.Order, err = stringsToUUIDs(order); err != nil {
		return nil, fmt.Errorf("invalid order reference: %w", err)
	}

	return &playlist, nil
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

// nullString returns nil for empty strings, otherwise returns a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time verification that PlaylistRepository implements repository.PlaylistRepository.
var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
