package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
	"github.com/mvdk-dev/playmix/internal/usecase"
)

type CreateAdRequest struct {
	Title       string `json:"title"`
	Advertiser  string `json:"advertiser"`
	DurationSec int    `json:"duration_sec"`
	FileName    string `json:"file_name"`
}

type CreateAdResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Advertiser  string `json:"advertiser"`
	DurationSec int    `json:"duration_sec"`
	UploadURL   string `json:"upload_url"`
	CreatedAt   string `json:"created_at"`
}

type AdResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Advertiser  string `json:"advertiser"`
	DurationSec int    `json:"duration_sec"`
	CreativeURL string `json:"creative_url,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// AdHandler handles ad catalog HTTP requests.
type AdHandler struct {
	svc usecase.AdService
}

// NewAdHandler creates a new AdHandler.
func NewAdHandler(svc usecase.AdService) *AdHandler {
	return &AdHandler{svc: svc}
}

// Create handles POST /v1/ads
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	output, err := h.svc.CreateAd(r.Context(), usecase.CreateAdInput{
		Title:       req.Title,
		Advertiser:  req.Advertiser,
		DurationSec: req.DurationSec,
		FileName:    req.FileName,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, CreateAdResponse{
		ID:          output.Ad.ID.String(),
		Title:       output.Ad.Title,
		Advertiser:  output.Ad.Advertiser,
		DurationSec: output.Ad.DurationSec,
		UploadURL:   output.UploadURL,
		CreatedAt:   output.Ad.CreatedAt.Format(time.RFC3339),
	})
}

// List handles GET /v1/ads
func (h *AdHandler) List(w http.ResponseWriter, r *http.Request) {
	ads, err := h.svc.ListAds(r.Context(), r.URL.Query().Get("advertiser"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	out := make([]AdResponse, 0, len(ads))
	for _, ad := range ads {
		out = append(out, AdResponse{
			ID:          ad.ID.String(),
			Title:       ad.Title,
			Advertiser:  ad.Advertiser,
			DurationSec: ad.DurationSec,
			CreatedAt:   ad.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   ad.UpdatedAt.Format(time.RFC3339),
		})
	}
	JSON(w, http.StatusOK, out)
}

// Get handles GET /v1/ads/{id}
func (h *AdHandler) Get(w http.ResponseWriter, r *http.Request) {
	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_ad_id", "Ad ID must be a valid UUID")
		return
	}

	output, err := h.svc.GetAd(r.Context(), adID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, AdResponse{
		ID:          output.Ad.ID.String(),
		Title:       output.Ad.Title,
		Advertiser:  output.Ad.Advertiser,
		DurationSec: output.Ad.DurationSec,
		CreativeURL: output.CreativeURL,
		CreatedAt:   output.Ad.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   output.Ad.UpdatedAt.Format(time.RFC3339),
	})
}

// Delete handles DELETE /v1/ads/{id}
func (h *AdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_ad_id", "Ad ID must be a valid UUID")
		return
	}

	if err := h.svc.DeleteAd(r.Context(), adID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrAdNotFound):
		Error(w, http.StatusNotFound, "ad_not_found", "Ad not found")
	case errors.Is(err, model.ErrEmptyTitle):
		Error(w, http.StatusBadRequest, "invalid_title", "Title cannot be empty")
	case errors.Is(err, model.ErrTitleTooLong):
		Error(w, http.StatusBadRequest, "invalid_title", "Title exceeds maximum length")
	case errors.Is(err, model.ErrMissingAdvertiser):
		Error(w, http.StatusBadRequest, "invalid_advertiser", "Advertiser is required")
	case errors.Is(err, model.ErrInvalidDuration):
		Error(w, http.StatusBadRequest, "invalid_duration", "Duration must be a positive number of seconds")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
