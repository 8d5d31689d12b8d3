package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
)

// InMemoryProductCache implements the product read cache in process
// memory. Suitable for single-instance deployments and tests; entries
// are not shared across instances.
type InMemoryProductCache struct {
	mu       sync.RWMutex
	products map[uuid.UUID]productEntry
	ttl      time.Duration
}

type productEntry struct {
	product   *catalog.Product
	expiresAt time.Time
}

// NewInMemoryProductCache creates an in-memory product cache with the
// given entry TTL
func NewInMemoryProductCache(ttl time.Duration) *InMemoryProductCache {
	return &InMemoryProductCache{
		products: make(map[uuid.UUID]productEntry),
		ttl:      ttl,
	}
}

// Get returns the cached product for the ID, if present and fresh
func (c *InMemoryProductCache) Get(_ context.Context, id uuid.UUID) (*catalog.Product, bool) {
	c.mu.RLock()
	entry, ok := c.products[id]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.products, id)
		c.mu.Unlock()
		return nil, false
	}

	// Copy so callers cannot mutate the cached value.
	product := *entry.product
	return &product, true
}

// Set stores the product under its ID with the configured TTL
func (c *InMemoryProductCache) Set(_ context.Context, product *catalog.Product) {
	copied := *product

	c.mu.Lock()
	c.products[product.ID] = productEntry{
		product:   &copied,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate removes the product's cache entry
func (c *InMemoryProductCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	delete(c.products, id)
	c.mu.Unlock()
}

var _ catalogapp.ProductCache = (*InMemoryProductCache)(nil)
