package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status controls the visibility of a playlist.
type Status string

const (
	StatusPublic  Status = "public"
	StatusPrivate Status = "private"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPublic, StatusPrivate:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// MovieSnapshot is a point-in-time copy of movie data owned by the remote
// movies service. It is not live-linked: attaching a movie replaces the
// snapshot wholesale, and later changes to the source movie are not reflected.
type MovieSnapshot struct {
	ExternalID  string
	Title       string
	Director    string
	DurationSec int
	PosterURL   string
}

// Playlist composes one main movie snapshot with an ordered sequence of ads.
//
// Order is the authoritative playback order and may reference the same ad
// more than once. Ads is a plain membership list and is not consulted for
// playback. DurationSec is derived: movie duration (0 when no movie is
// attached) plus the sum of ad durations over Order.
type Playlist struct {
	ID          uuid.UUID
	Title       string
	Description string
	OwnerID     string
	Status      Status
	MainMovie   *MovieSnapshot
	Ads         []uuid.UUID
	Order       []uuid.UUID
	DurationSec int
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrTitleTooLong    = errors.New("title exceeds maximum length of 255 characters")
	ErrMissingOwner    = errors.New("owner id cannot be empty")
	ErrAdNotInPlaylist = errors.New("ad is not part of this playlist")
	ErrInvalidPosition = errors.New("invalid position")
)

const maxTitleLength = 255

// NewPlaylist creates an empty playlist owned by ownerID: no movie, no ads,
// duration zero, public visibility.
func NewPlaylist(title, description, ownerID string) (*Playlist, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if ownerID == "" {
		return nil, ErrMissingOwner
	}

	now := time.Now()
	return &Playlist{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Status:      StatusPublic,
		Ads:         []uuid.UUID{},
		Order:       []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AttachMovie replaces the main movie snapshot and adjusts the total duration
// by the difference between the new and the previous snapshot. Re-attaching
// an identical snapshot leaves the duration unchanged.
func (p *Playlist) AttachMovie(snapshot MovieSnapshot) {
	previous := 0
	if p.MainMovie != nil {
		previous = p.MainMovie.DurationSec
	}

	p.MainMovie = &snapshot
	p.DurationSec += snapshot.DurationSec - previous
	p.UpdatedAt = time.Now()
}

// AppendAd adds the ad to the end of the playback order and to the membership
// list, and extends the total duration. Appending the same ad twice is
// allowed and counts its duration twice.
func (p *Playlist) AppendAd(ad *Ad) {
	p.Ads = append(p.Ads, ad.ID)
	p.Order = append(p.Order, ad.ID)
	p.DurationSec += ad.DurationSec
	p.UpdatedAt = time.Now()
}

// MoveEntry moves the first occurrence of adID to newPosition using
// remove-then-insert splice semantics: the entry ends up at exactly
// newPosition in the final order. Duration is unaffected. Moving an entry
// onto its current index is a valid no-op.
func (p *Playlist) MoveEntry(adID uuid.UUID, newPosition int) error {
	currentIndex := -1
	for i, id := range p.Order {
		if id == adID {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return ErrAdNotInPlaylist
	}

	if newPosition < 0 || newPosition >= len(p.Order) {
		return fmt.Errorf("%w: must be between 0 and %d", ErrInvalidPosition, len(p.Order)-1)
	}

	moved := p.Order[currentIndex]
	p.Order = append(p.Order[:currentIndex], p.Order[currentIndex+1:]...)

	p.Order = append(p.Order, uuid.Nil)
	copy(p.Order[newPosition+1:], p.Order[newPosition:])
	p.Order[newPosition] = moved

	p.UpdatedAt = time.Now()
	return nil
}

// IsPublic reports whether the playlist is publicly visible.
func (p *Playlist) IsPublic() bool {
	return p.Status == StatusPublic
}

// IsOwnedBy reports whether userID created this playlist.
func (p *Playlist) IsOwnedBy(userID string) bool {
	return p.OwnerID == userID
}
