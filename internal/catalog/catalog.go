// Package catalog holds the product collection for the session: one
// fetch at startup, refreshed by admin mutations, no further caching
// policy.
package catalog

import (
	"sync"

	"github.com/hotiphone/storefront/internal/models"
)

// Fetcher is the slice of the data backend the accessor needs.
type Fetcher interface {
	GetAllProducts() ([]models.Product, error)
}

type Accessor struct {
	fetcher Fetcher

	mu       sync.RWMutex
	products []models.Product
}

func NewAccessor(fetcher Fetcher) *Accessor {
	return &Accessor{fetcher: fetcher}
}

// Refresh refetches the collection, replacing the held result. On
// error the previous result is kept.
func (a *Accessor) Refresh() error {
	products, err := a.fetcher.GetAllProducts()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.products = products
	a.mu.Unlock()
	return nil
}

// Products returns the last fetch result (all statuses; the back
// office lists inactive products too).
func (a *Accessor) Products() []models.Product {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.products
}

// Active returns the products the storefront shows.
func (a *Accessor) Active() []models.Product {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var active []models.Product
	for _, p := range a.products {
		if p.Status == models.ProductActive {
			active = append(active, p)
		}
	}
	return active
}

// Find returns the held product with the given id, or nil.
func (a *Accessor) Find(id int64) *models.Product {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.products {
		if a.products[i].ID == id {
			p := a.products[i]
			return &p
		}
	}
	return nil
}
