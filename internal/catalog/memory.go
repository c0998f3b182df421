package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/freshkart/storefront/internal/domain"
)

// MemoryCatalog implements Store over a fixed product set. Used in tests and
// for running without Postgres.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewMemoryCatalog(products ...domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *MemoryCatalog) List(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (c *MemoryCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, exists := c.products[id]
	if !exists {
		return nil, nil
	}
	return &p, nil
}
