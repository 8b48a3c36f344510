package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotiphone/storefront/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.DB.Close() })
	return s
}

func sampleProduct() *models.Product {
	return &models.Product{
		Name:        "iPhone 16 Pro Max",
		Description: "256GB, tela 6.9",
		Price:       10499,
		Category:    "iPhone 16 Pro Max",
		Colors:      []string{"Titânio Preto", "Titânio Natural"},
		Capacities:  []string{"256GB", "512GB", "1TB"},
		Images:      []string{"/static/uploads/a.jpg"},
		Stock:       12,
		Status:      models.ProductActive,
	}
}

func TestProductCreateAndGet(t *testing.T) {
	s := newTestStore(t)

	p := sampleProduct()
	require.NoError(t, s.CreateProduct(p))
	require.NotZero(t, p.ID)

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, []string{"Titânio Preto", "Titânio Natural"}, got.Colors)
	assert.Equal(t, []string{"256GB", "512GB", "1TB"}, got.Capacities)
	assert.Equal(t, 12, got.Stock)
}

func TestProductUpdate(t *testing.T) {
	s := newTestStore(t)

	p := sampleProduct()
	require.NoError(t, s.CreateProduct(p))

	p.Price = 9999
	p.Status = models.ProductInactive
	p.Images = append(p.Images, "/static/uploads/b.jpg")
	require.NoError(t, s.UpdateProduct(p))

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9999.0, got.Price)
	assert.Equal(t, models.ProductInactive, got.Status)
	assert.Len(t, got.Images, 2)
}

func TestProductDeleteRemovesFromList(t *testing.T) {
	s := newTestStore(t)

	p := sampleProduct()
	require.NoError(t, s.CreateProduct(p))
	require.NoError(t, s.DeleteProduct(p.ID))

	products, err := s.GetAllProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductDoubleDeleteReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	p := sampleProduct()
	require.NoError(t, s.CreateProduct(p))
	require.NoError(t, s.DeleteProduct(p.ID))

	err := s.DeleteProduct(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The list stays consistent after the failed second delete.
	products, err := s.GetAllProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestUpdateMissingProductReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	p := sampleProduct()
	p.ID = 999
	assert.ErrorIs(t, s.UpdateProduct(p), ErrNotFound)
}

func TestOrderCreateWithItems(t *testing.T) {
	s := newTestStore(t)

	o := &models.Order{
		OrderRef:   "A7X9BC2D",
		CustomerID: 1,
		TotalPrice: 12398,
		Status:     models.StatusPlaced,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 1, Color: "Preto", Capacity: "256GB", Price: 10499},
			{ProductID: 2, Quantity: 1, Price: 1899},
		},
	}
	require.NoError(t, s.CreateOrder(o))
	require.NotZero(t, o.ID)

	got, err := s.GetOrderByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, o.ID, got.Items[0].OrderID)
	assert.Equal(t, "256GB", got.Items[0].Capacity)
}

func TestOrderTrackingUpdate(t *testing.T) {
	s := newTestStore(t)

	o := &models.Order{OrderRef: "REF1", CustomerID: 1, TotalPrice: 100, Status: models.StatusPaid}
	require.NoError(t, s.CreateOrder(o))

	o.ApplyTracking("BR123456789")
	require.NoError(t, s.UpdateOrderTracking(o.ID, o.TrackingCode, o.Status))

	got, err := s.GetOrderByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)
	assert.Equal(t, "BR123456789", got.TrackingCode)
}

func TestOrdersByCustomer(t *testing.T) {
	s := newTestStore(t)

	for _, cid := range []int64{1, 1, 2} {
		require.NoError(t, s.CreateOrder(&models.Order{OrderRef: "R", CustomerID: cid, TotalPrice: 10, Status: models.StatusPlaced}))
	}

	orders, err := s.GetOrdersByCustomer(1)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestProfileRoundTripAndRole(t *testing.T) {
	s := newTestStore(t)

	p := &models.Profile{Email: "ana@example.com", FullName: "Ana Souza", Password: "hash", Phone: "11999990000"}
	require.NoError(t, s.CreateProfile(p))

	got, err := s.GetProfileByEmail("ANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RoleCustomer, got.Role)

	require.NoError(t, s.UpdateProfileRole("ana@example.com", models.RoleAdmin))
	got, err = s.GetProfileByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestProfileMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetProfileByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDashboardStats(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateProduct(sampleProduct()))
	require.NoError(t, s.CreateOrder(&models.Order{OrderRef: "R1", CustomerID: 1, TotalPrice: 100, Status: models.StatusPlaced}))
	require.NoError(t, s.CreateOrder(&models.Order{OrderRef: "R2", CustomerID: 1, TotalPrice: 50, Status: models.StatusShipped}))

	stats, err := s.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.InDelta(t, 150.0, stats.Revenue, 0.001)
	assert.Equal(t, 1, stats.OrdersByStatus[models.StatusPlaced])
}
