package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
	"github.com/mvdk-dev/playmix/internal/infrastructure/metrics"
)

// AdRepository implements repository.AdRepository using PostgreSQL.
type AdRepository struct {
	db DBTX
}

// NewAdRepository creates a new AdRepository instance.
func NewAdRepository(db DBTX) *AdRepository {
	return &AdRepository{db: db}
}

// Create persists a new ad.
func (r *AdRepository) Create(ctx context.Context, ad *model.Ad) error {
	const query = `
		INSERT INTO ads (id, title, advertiser, duration_sec, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		ad.ID,
		ad.Title,
		ad.Advertiser,
		ad.DurationSec,
		nullString(ad.URL),
		ad.CreatedAt,
		ad.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateAd
		}
		return fmt.Errorf("failed to create ad: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableAds).Inc()
	return nil
}

// GetByID retrieves an ad by its unique identifier.
func (r *AdRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ad, error) {
	const query = `
		SELECT id, title, advertiser, duration_sec, url, created_at, updated_at
		FROM ads
		WHERE id = $1
	`

	ad, err := scanAd(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to get ad by ID: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableAds).Inc()
	return ad, nil
}

// List retrieves ads, newest first, optionally narrowed to one advertiser.
func (r *AdRepository) List(ctx context.Context, advertiser string) ([]*model.Ad, error) {
	query := `
		SELECT id, title, advertiser, duration_sec, url, created_at, updated_at
		FROM ads
	`
	var args []any
	if advertiser != "" {
		query += ` WHERE advertiser = $1`
		args = append(args, advertiser)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ads: %w", err)
	}
	defer rows.Close()

	var ads []*model.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ad: %w", err)
		}
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ads: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableAds).Inc()
	return ads, nil
}

// Delete removes an ad from the catalog.
func (r *AdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM ads WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ad: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrAdNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableAds).Inc()
	return nil
}

// scanAd scans a single row into an Ad model.
// Works for both pgx.Row and pgx.Rows.
func scanAd(row pgx.Row) (*model.Ad, error) {
	var (
		ad  model.Ad
		url *string
	)

	err := row.Scan(
		&ad.ID,
		&ad.Title,
		&ad.Advertiser,
		&ad.DurationSec,
		&url,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if url != nil {
		ad.URL = *url
	}

	return &ad, nil
}

// Compile-time verification that AdRepository implements repository.AdRepository.
var _ repository.AdRepository = (*AdRepository)(nil)
