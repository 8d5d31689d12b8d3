package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ObjectStorageService is implemented by the infrastructure layer
// (S3-compatible storage). Clients upload and download cover images
// directly against presigned URLs; the API never proxies image bytes.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// CoverServiceConfig holds configuration for the cover service
type CoverServiceConfig struct {
	UploadURLExpiry     time.Duration
	DownloadURLExpiry   time.Duration
	MaxCoversPerProduct int64
}

// DefaultCoverServiceConfig returns the default configuration
func DefaultCoverServiceConfig() CoverServiceConfig {
	return CoverServiceConfig{
		UploadURLExpiry:     15 * time.Minute,
		DownloadURLExpiry:   1 * time.Hour,
		MaxCoversPerProduct: 10,
	}
}

// CreateCoverRequest registers a new cover image for a product
type CreateCoverRequest struct {
	FileName    string
	ContentType string
	FileSize    int64
}

// CreateCoverResponse carries the cover plus the presigned upload URL
type CreateCoverResponse struct {
	Cover     ProductCoverResponse `json:"cover"`
	UploadURL string               `json:"upload_url"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// CoverService handles product cover image operations
type CoverService struct {
	coverRepo   catalog.ProductCoverRepository
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	config      CoverServiceConfig
}

// NewCoverService creates a new CoverService
func NewCoverService(
	coverRepo catalog.ProductCoverRepository,
	productRepo catalog.ProductRepository,
	storage ObjectStorageService,
	config CoverServiceConfig,
) *CoverService {
	return &CoverService{
		coverRepo:   coverRepo,
		productRepo: productRepo,
		storage:     storage,
		config:      config,
	}
}

// Create registers a cover for the product behind slug and returns a
// presigned URL the client uploads the image bytes to.
func (s *CoverService) Create(ctx context.Context, slug string, req CreateCoverRequest) (*CreateCoverResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	count, err := s.coverRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if count >= s.config.MaxCoversPerProduct {
		return nil, shared.NewDomainError("TOO_MANY_COVERS",
			fmt.Sprintf("Product cannot have more than %d covers", s.config.MaxCoversPerProduct))
	}

	storageKey := fmt.Sprintf("products/%s/covers/%s-%s", product.ID, uuid.New(), req.FileName)

	cover, err := catalog.NewProductCover(product.ID, req.FileName, req.ContentType, req.FileSize, storageKey)
	if err != nil {
		return nil, err
	}
	cover.SetSortOrder(int(count))

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.coverRepo.Save(ctx, cover); err != nil {
		return nil, err
	}

	return &CreateCoverResponse{
		Cover:     *ToProductCoverResponse(cover, ""),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// List returns all covers of a product with presigned download URLs
func (s *CoverService) List(ctx context.Context, slug string) ([]ProductCoverResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	covers, err := s.coverRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductCoverResponse, 0, len(covers))
	for i := range covers {
		url, _, err := s.storage.GenerateDownloadURL(ctx, covers[i].StorageKey, s.config.DownloadURLExpiry)
		if err != nil {
			// A broken storage link should not hide the record itself
			url = ""
		}
		responses = append(responses, *ToProductCoverResponse(&covers[i], url))
	}
	return responses, nil
}

// SetSortOrder changes a cover's display position
func (s *CoverService) SetSortOrder(ctx context.Context, slug string, coverID uuid.UUID, sortOrder int) (*ProductCoverResponse, error) {
	cover, err := s.findCoverForProduct(ctx, slug, coverID)
	if err != nil {
		return nil, err
	}

	cover.SetSortOrder(sortOrder)

	if err := s.coverRepo.Save(ctx, cover); err != nil {
		return nil, err
	}

	return ToProductCoverResponse(cover, ""), nil
}

// Delete removes a cover record and best-effort deletes the stored object
func (s *CoverService) Delete(ctx context.Context, slug string, coverID uuid.UUID) error {
	cover, err := s.findCoverForProduct(ctx, slug, coverID)
	if err != nil {
		return err
	}

	if err := s.coverRepo.Delete(ctx, cover.ID); err != nil {
		return err
	}

	// The record is the source of truth; an orphaned object is harmless.
	_ = s.storage.DeleteObject(ctx, cover.StorageKey)

	return nil
}

func (s *CoverService) findCoverForProduct(ctx context.Context, slug string, coverID uuid.UUID) (*catalog.ProductCover, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cover, err := s.coverRepo.FindByID(ctx, coverID)
	if err != nil {
		return nil, err
	}
	if cover.ProductID != product.ID {
		return nil, shared.ErrNotFound
	}
	return cover, nil
}
