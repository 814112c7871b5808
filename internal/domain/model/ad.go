package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ad is a locally owned advertisement segment. The URL field holds the
// storage key of the creative file, not a public address; handlers resolve
// it to a presigned URL on read.
type Ad struct {
	ID          uuid.UUID
	Title       string
	Advertiser  string
	DurationSec int
	URL         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrMissingAdvertiser = errors.New("advertiser cannot be empty")
	ErrInvalidDuration   = errors.New("duration must be a positive number of seconds")
)

// NewAd creates a new Ad with a generated id.
func NewAd(title, advertiser string, durationSec int) (*Ad, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if advertiser == "" {
		return nil, ErrMissingAdvertiser
	}
	if durationSec <= 0 {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	return &Ad{
		ID:          uuid.New(),
		Title:       title,
		Advertiser:  advertiser,
		DurationSec: durationSec,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetCreativeKey records the storage key of the uploaded creative file.
func (a *Ad) SetCreativeKey(key string) {
	a.URL = key
	a.UpdatedAt = time.Now()
}
