package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
)

// AdRepository defines the interface for the local ad catalog.
type AdRepository interface {
	// Create persists a new ad.
	// Returns ErrDuplicateAd if the id is already taken.
	Create(ctx context.Context, ad *model.Ad) error

	// GetByID retrieves an ad by its unique identifier.
	// Returns nil and ErrAdNotFound if the ad does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Ad, error)

	// List retrieves ads, newest first. A non-empty advertiser narrows the
	// result to that advertiser's ads.
	List(ctx context.Context, advertiser string) ([]*model.Ad, error)

	// Delete removes an ad from the catalog. Playlists that already reference
	// the ad keep playing it; resolution happened at append time.
	// Returns ErrAdNotFound if the ad does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
