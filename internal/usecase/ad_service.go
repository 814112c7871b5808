package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/mvdk-dev/playmix/internal/domain/model"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
)

// CreateAdInput contains the input parameters for creating an ad.
type CreateAdInput struct {
	Title       string
	Advertiser  string
	DurationSec int
	FileName    string
}

// CreateAdOutput contains the result of creating an ad.
type CreateAdOutput struct {
	Ad        *model.Ad
	UploadURL string
}

// GetAdOutput contains an ad with its creative resolved to a download URL.
type GetAdOutput struct {
	Ad          *model.Ad
	CreativeURL string
}

// AdService defines the interface for ad catalog operations.
type AdService interface {
	// CreateAd creates an ad and returns a presigned upload URL for its
	// creative file.
	CreateAd(ctx context.Context, input CreateAdInput) (*CreateAdOutput, error)

	// GetAd retrieves an ad and resolves its creative to a presigned
	// download URL.
	GetAd(ctx context.Context, adID uuid.UUID) (*GetAdOutput, error)

	// ListAds retrieves ads, optionally narrowed to one advertiser.
	ListAds(ctx context.Context, advertiser string) ([]*model.Ad, error)

	// DeleteAd removes an ad from the catalog and its creative from storage.
	DeleteAd(ctx context.Context, adID uuid.UUID) error
}

// AdServiceConfig holds configuration for AdService.
type AdServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultAdServiceConfig returns the default configuration.
func DefaultAdServiceConfig() AdServiceConfig {
	return AdServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

type adService struct {
	repo    repository.AdRepository
	storage repository.ObjectStorage

	uploadURLExpiry   time.Duration
	downloadURLExpiry time.Duration
}

// NewAdService creates a new AdService instance.
func NewAdService(
	repo repository.AdRepository,
	storage repository.ObjectStorage,
	cfg AdServiceConfig,
) AdService {
	return &adService{
		repo:              repo,
		storage:           storage,
		uploadURLExpiry:   cfg.UploadURLExpiry,
		downloadURLExpiry: cfg.DownloadURLExpiry,
	}
}

// CreateAd creates ad metadata and generates a presigned upload URL.
func (s *adService) CreateAd(ctx context.Context, input CreateAdInput) (*CreateAdOutput, error) {
	ad, err := model.NewAd(input.Title, input.Advertiser, input.DurationSec)
	if err != nil {
		return nil, err
	}

	key := s.generateCreativeKey(ad.ID, input.FileName)

	uploadURL, err := s.storage.GeneratePresignedUploadURL(ctx, key, s.uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate presigned upload URL: %w", err)
	}

	ad.SetCreativeKey(key)

	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}

	return &CreateAdOutput{
		Ad:        ad,
		UploadURL: uploadURL,
	}, nil
}

// GetAd retrieves an ad and resolves its creative to a presigned download URL.
// An ad created before its creative upload finished has no key yet; the
// CreativeURL is empty in that case.
func (s *adService) GetAd(ctx context.Context, adID uuid.UUID) (*GetAdOutput, error) {
	ad, err := s.repo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	out := &GetAdOutput{Ad: ad}
	if ad.URL != "" {
		downloadURL, err := s.storage.GeneratePresignedDownloadURL(ctx, ad.URL, s.downloadURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("generate presigned download URL: %w", err)
		}
		out.CreativeURL = downloadURL
	}

	return out, nil
}

// ListAds retrieves ads, optionally narrowed to one advertiser.
func (s *adService) ListAds(ctx context.Context, advertiser string) ([]*model.Ad, error) {
	return s.repo.List(ctx, advertiser)
}

// DeleteAd removes an ad from the catalog and its creative from storage.
// The catalog row is the source of truth; a failed storage delete is logged
// and leaves an orphaned object rather than a dangling catalog entry.
func (s *adService) DeleteAd(ctx context.Context, adID uuid.UUID) error {
	ad, err := s.repo.GetByID(ctx, adID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, adID); err != nil {
		return err
	}

	if ad.URL != "" {
		if err := s.storage.Delete(ctx, ad.URL); err != nil {
			slog.Warn("failed to delete creative from storage",
				"ad_id", adID,
				"key", ad.URL,
				"error", err,
			)
		}
	}

	return nil
}

// generateCreativeKey creates the storage key for creative files.
// Format: creatives/{ad_id}/{filename}
func (s *adService) generateCreativeKey(adID uuid.UUID, filename string) string {
	if filename == "" {
		filename = "creative"
	}
	return path.Join("creatives", adID.String(), filename)
}
