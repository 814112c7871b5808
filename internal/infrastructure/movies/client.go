// Package movies implements the gateway to the remote movies service.
package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
	"github.com/mvdk-dev/playmix/internal/infrastructure/metrics"
)

// ClientConfig holds configuration for the movies service client.
type ClientConfig struct {
	BaseURL string        // e.g. http://movies:3001/movies
	Timeout time.Duration // hard bound on each fetch; expiry is a communication error
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}
}

// Client implements repository.MovieGateway over HTTP.
//
// A 404 from the movies service is a normal outcome (the movie does not
// exist) and maps to ErrMovieNotFound. Every other failure, including
// timeouts and transport errors, maps to ErrMovieServiceUnavailable and is
// surfaced to the caller. The client performs no retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Compile-time verification that Client implements repository.MovieGateway.
var _ repository.MovieGateway = (*Client)(nil)

// NewClient creates a new movies service client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// moviePayload is the wire format of the movies service.
type moviePayload struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	DurationSec int    `json:"duration"`
	Director    string `json:"director"`
	Image       string `json:"image"`
}

// FetchMovie retrieves a point-in-time movie snapshot by its external id.
func (c *Client) FetchMovie(ctx context.Context, externalID string) (*model.MovieSnapshot, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, externalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build movie request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.MovieFetchTotal.WithLabelValues(metrics.MovieFetchError).Inc()
		return nil, fmt.Errorf("%w: %v", repository.ErrMovieServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.MovieFetchTotal.WithLabelValues(metrics.MovieFetchNotFound).Inc()
		return nil, repository.ErrMovieNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		metrics.MovieFetchTotal.WithLabelValues(metrics.MovieFetchError).Inc()
		return nil, fmt.Errorf("%w: movies service returned status %d", repository.ErrMovieServiceUnavailable, resp.StatusCode)
	}

	var payload moviePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.MovieFetchTotal.WithLabelValues(metrics.MovieFetchError).Inc()
		return nil, fmt.Errorf("%w: decoding response: %v", repository.ErrMovieServiceUnavailable, err)
	}

	if payload.ID == "" {
		payload.ID = externalID
	}

	metrics.MovieFetchTotal.WithLabelValues(metrics.MovieFetchOK).Inc()
	return &model.MovieSnapshot{
		ExternalID:  payload.ID,
		Title:       payload.Title,
		Director:    payload.Director,
		DurationSec: payload.DurationSec,
		PosterURL:   payload.Image,
	}, nil
}
