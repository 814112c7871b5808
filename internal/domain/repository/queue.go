package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a playlist mutation.
type EventKind string

const (
	EventPlaylistCreated EventKind = "created"
	EventPlaylistUpdated EventKind = "updated"
	EventPlaylistDeleted EventKind = "deleted"
)

// PlaylistEvent announces that a playlist changed. Other instances consume
// these to drop stale cache entries; the event carries no aggregate state.
type PlaylistEvent struct {
	PlaylistID uuid.UUID `json:"playlist_id"`
	Kind       EventKind `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventQueue defines the interface for publishing and consuming playlist
// events. Implementations should be provided by the infrastructure layer
// (e.g., RabbitMQ).
type EventQueue interface {
	// PublishPlaylistEvent sends an event to the queue. Publishing is
	// best-effort from the caller's point of view: a mutation must not be
	// rolled back because the announcement failed.
	PublishPlaylistEvent(ctx context.Context, event PlaylistEvent) error

	// ConsumePlaylistEvents starts consuming events from the queue, invoking
	// the handler for each one. Blocks until the context is cancelled or the
	// underlying channel closes.
	ConsumePlaylistEvents(ctx context.Context, handler func(event PlaylistEvent) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
