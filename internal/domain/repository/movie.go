package repository

import (
	"context"

	"github.com/mvdk-dev/playmix/internal/domain/model"
)

// MovieGateway fetches denormalized movie data from the remote movies service.
// Implementations must bound the call with an explicit timeout and must not
// retry: expiry and transport failures surface as ErrMovieServiceUnavailable,
// a clean 404 as ErrMovieNotFound.
type MovieGateway interface {
	FetchMovie(ctx context.Context, externalID string) (*model.MovieSnapshot, error)
}
