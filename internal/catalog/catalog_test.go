package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotiphone/storefront/internal/models"
)

type fakeFetcher struct {
	products []models.Product
	err      error
	calls    int
}

func (f *fakeFetcher) GetAllProducts() ([]models.Product, error) {
	f.calls++
	return f.products, f.err
}

func TestRefreshHoldsLastFetch(t *testing.T) {
	f := &fakeFetcher{products: []models.Product{
		{ID: 1, Name: "iPhone 16", Status: models.ProductActive},
		{ID: 2, Name: "MacBook Air", Status: models.ProductInactive},
	}}
	a := NewAccessor(f)
	require.NoError(t, a.Refresh())

	assert.Len(t, a.Products(), 2)
	assert.Equal(t, 1, f.calls)
}

func TestActiveFiltersInactive(t *testing.T) {
	f := &fakeFetcher{products: []models.Product{
		{ID: 1, Status: models.ProductActive},
		{ID: 2, Status: models.ProductInactive},
		{ID: 3, Status: models.ProductActive},
	}}
	a := NewAccessor(f)
	require.NoError(t, a.Refresh())

	active := a.Active()
	require.Len(t, active, 2)
	for _, p := range active {
		assert.Equal(t, models.ProductActive, p.Status)
	}
}

func TestRefreshErrorKeepsPreviousResult(t *testing.T) {
	f := &fakeFetcher{products: []models.Product{{ID: 1}}}
	a := NewAccessor(f)
	require.NoError(t, a.Refresh())

	f.err = errors.New("backend down")
	assert.Error(t, a.Refresh())
	assert.Len(t, a.Products(), 1)
}

func TestFind(t *testing.T) {
	f := &fakeFetcher{products: []models.Product{{ID: 5, Name: "AirPods Pro"}}}
	a := NewAccessor(f)
	require.NoError(t, a.Refresh())

	p := a.Find(5)
	require.NotNil(t, p)
	assert.Equal(t, "AirPods Pro", p.Name)
	assert.Nil(t, a.Find(99))
}
