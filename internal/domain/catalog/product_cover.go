package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// MaxCoverFileSize is the maximum allowed image size (10MB)
const MaxCoverFileSize = 10 * 1024 * 1024

// allowedCoverContentTypes is the whitelist of image types accepted for covers.
// SVG is excluded because it can carry scripts.
var allowedCoverContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ProductCover represents a cover image attached to a product.
// The binary lives in object storage; only the key is persisted here.
type ProductCover struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	FileSize    int64     `gorm:"not null"`
	StorageKey  string    `gorm:"type:varchar(512);not null"`
	SortOrder   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductCover) TableName() string {
	return "product_covers"
}

// NewProductCover creates a new cover record for a product
func NewProductCover(productID uuid.UUID, fileName, contentType string, fileSize int64, storageKey string) (*ProductCover, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if !allowedCoverContentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Cover must be a JPEG, PNG, GIF or WebP image")
	}
	if fileSize <= 0 || fileSize > MaxCoverFileSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "Cover image must be between 1 byte and 10MB")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	return &ProductCover{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		FileName:          fileName,
		ContentType:       contentType,
		FileSize:          fileSize,
		StorageKey:        storageKey,
	}, nil
}

// SetSortOrder changes the display position of the cover
func (c *ProductCover) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
