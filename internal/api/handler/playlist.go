package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/api/middleware"
	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
	"github.com/mvdk-dev/playmix/internal/usecase"
)

// Request/Response types

type CreatePlaylistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AttachMovieRequest struct {
	MovieID string `json:"movie_id"`
}

type AppendAdRequest struct {
	AdID string `json:"ad_id"`
}

type ReorderRequest struct {
	AdID     string `json:"ad_id"`
	Position *int   `json:"position"`
}

type MovieSnapshotResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Director    string `json:"director,omitempty"`
	DurationSec int    `json:"duration_sec"`
	PosterURL   string `json:"poster_url,omitempty"`
}

type PlaylistResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	OwnerID     string                 `json:"owner_id"`
	Status      string                 `json:"status"`
	MainMovie   *MovieSnapshotResponse `json:"main_movie,omitempty"`
	Ads         []string               `json:"ads"`
	Order       []string               `json:"order"`
	DurationSec int                    `json:"duration_sec"`
	Version     int64                  `json:"version"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

// PlaylistHandler handles playlist-related HTTP requests.
type PlaylistHandler struct {
	svc usecase.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(svc usecase.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Create handles POST /v1/playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		Error(w, http.StatusUnauthorized, "unauthenticated", "A valid bearer token is required")
		return
	}

	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	playlist, err := h.svc.CreatePlaylist(r.Context(), usecase.CreatePlaylistInput{
		OwnerID:     identity.UserID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toPlaylistResponse(playlist))
}

// List handles GET /v1/playlists
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.svc.ListPlaylists(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	out := make([]PlaylistResponse, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, toPlaylistResponse(p))
	}
	JSON(w, http.StatusOK, out)
}

// Get handles GET /v1/playlists/{id}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_playlist_id", "Playlist ID must be a valid UUID")
		return
	}

	playlist, err := h.svc.GetPlaylist(r.Context(), playlistID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(playlist))
}

// Delete handles DELETE /v1/playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_playlist_id", "Playlist ID must be a valid UUID")
		return
	}

	if err := h.svc.DeletePlaylist(r.Context(), playlistID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AttachMovie handles POST /v1/playlists/{id}/movie
func (h *PlaylistHandler) AttachMovie(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_playlist_id", "Playlist ID must be a valid UUID")
		return
	}

	var req AttachMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.MovieID == "" {
		Error(w, http.StatusBadRequest, "invalid_movie_id", "Movie ID is required")
		return
	}

	playlist, err := h.svc.AddMovie(r.Context(), playlistID, req.MovieID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(playlist))
}

// AppendAd handles POST /v1/playlists/{id}/ads
func (h *PlaylistHandler) AppendAd(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_playlist_id", "Playlist ID must be a valid UUID")
		return
	}

	var req AppendAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	adID, err := uuid.Parse(req.AdID)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_ad_id", "Ad ID must be a valid UUID")
		return
	}

	playlist, err := h.svc.AddAd(r.Context(), playlistID, adID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(playlist))
}

// Reorder handles PUT /v1/playlists/{id}/order
func (h *PlaylistHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_playlist_id", "Playlist ID must be a valid UUID")
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	adID, err := uuid.Parse(req.AdID)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_ad_id", "Ad ID must be a valid UUID")
		return
	}
	if req.Position == nil {
		Error(w, http.StatusBadRequest, "invalid_position", "Position is required")
		return
	}

	playlist, err := h.svc.Reorder(r.Context(), playlistID, adID, *req.Position)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(playlist))
}

func (h *PlaylistHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrPlaylistNotFound):
		Error(w, http.StatusNotFound, "playlist_not_found", "Playlist not found")
	case errors.Is(err, repository.ErrAdNotFound):
		Error(w, http.StatusNotFound, "ad_not_found", "Ad not found")
	case errors.Is(err, repository.ErrMovieNotFound):
		Error(w, http.StatusNotFound, "movie_not_found", "Movie not found")
	case errors.Is(err, model.ErrEmptyTitle):
		Error(w, http.StatusBadRequest, "invalid_title", "Title cannot be empty")
	case errors.Is(err, model.ErrTitleTooLong):
		Error(w, http.StatusBadRequest, "invalid_title", "Title exceeds maximum length")
	case errors.Is(err, model.ErrMissingOwner):
		Error(w, http.StatusBadRequest, "invalid_owner", "Owner ID cannot be empty")
	case errors.Is(err, model.ErrAdNotInPlaylist):
		Error(w, http.StatusBadRequest, "ad_not_in_playlist", "Ad is not part of this playlist")
	case errors.Is(err, model.ErrInvalidPosition):
		// Message carries the valid range for this playlist
		Error(w, http.StatusBadRequest, "invalid_position", err.Error())
	case errors.Is(err, repository.ErrVersionConflict):
		Error(w, http.StatusConflict, "version_conflict", "Playlist was modified concurrently, retry the operation")
	case errors.Is(err, repository.ErrMovieServiceUnavailable):
		Error(w, http.StatusBadGateway, "movies_service_unavailable", "Could not reach the movies service")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toPlaylistResponse(p *model.Playlist) PlaylistResponse {
	resp := PlaylistResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Status:      p.Status.String(),
		Ads:         uuidStrings(p.Ads),
		Order:       uuidStrings(p.Order),
		DurationSec: p.DurationSec,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.MainMovie != nil {
		resp.MainMovie = &MovieSnapshotResponse{
			ID:          p.MainMovie.ExternalID,
			Title:       p.MainMovie.Title,
			Director:    p.MainMovie.Director,
			DurationSec: p.MainMovie.DurationSec,
			PosterURL:   p.MainMovie.PosterURL,
		}
	}
	return resp
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
