package repository

import "errors"

var (
	// ErrPlaylistNotFound is returned when a playlist cannot be found.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrDuplicatePlaylist is returned when attempting to create a playlist that already exists.
	ErrDuplicatePlaylist = errors.New("playlist already exists")

	// ErrVersionConflict is returned when an optimistic update loses a race
	// against a concurrent mutation of the same playlist.
	ErrVersionConflict = errors.New("playlist was modified concurrently")

	// ErrAdNotFound is returned when an ad cannot be found in the local catalog.
	ErrAdNotFound = errors.New("ad not found")

	// ErrDuplicateAd is returned when attempting to create an ad that already exists.
	ErrDuplicateAd = errors.New("ad already exists")

	// ErrMovieNotFound is returned when the movies service does not know the
	// requested movie. This is an expected outcome, not a transport failure.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrMovieServiceUnavailable is returned for every movies-service failure
	// other than a clean 404: timeouts, transport errors, non-success statuses.
	ErrMovieServiceUnavailable = errors.New("communication failure with the movies service")

	// ErrObjectNotFound is returned when a creative object does not exist in storage.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
