package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotiphone/storefront/internal/models"
)

var iphone = &models.Product{ID: 1, Name: "iPhone 16 Pro", Price: 7899}

func TestAddAccumulatesSameKey(t *testing.T) {
	c := &Cart{}
	for i := 0; i < 5; i++ {
		c.Add(iphone, "Preto", "256GB")
	}

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.Count())
}

func TestAddDistinguishesColorAndCapacity(t *testing.T) {
	c := &Cart{}
	c.Add(iphone, "Preto", "256GB")
	c.Add(iphone, "Branco", "256GB")
	c.Add(iphone, "Preto", "512GB")

	assert.Len(t, c.Items, 3)
	assert.Equal(t, 3, c.Count())
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	a := &Cart{}
	a.Add(iphone, "Preto", "256GB")
	a.UpdateQuantity(1, "Preto", "256GB", 0)

	b := &Cart{}
	b.Add(iphone, "Preto", "256GB")
	b.Remove(1, "Preto", "256GB")

	assert.Equal(t, a.Items, b.Items)
	assert.Empty(t, a.Items)
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	c := &Cart{}
	c.Add(iphone, "Preto", "256GB")
	c.UpdateQuantity(1, "Preto", "256GB", 7)

	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := &Cart{}
	c.Add(iphone, "Preto", "256GB")
	c.Remove(99, "Preto", "256GB")

	assert.Len(t, c.Items, 1)
}

func TestClear(t *testing.T) {
	c := &Cart{}
	c.Add(iphone, "Preto", "256GB")
	c.Clear()

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.Count())
}

func TestTotal(t *testing.T) {
	c := &Cart{}
	c.Add(iphone, "Preto", "256GB")
	c.Add(iphone, "Preto", "256GB")
	c.Add(&models.Product{ID: 2, Name: "AirPods", Price: 1899}, "", "")

	assert.InDelta(t, 7899*2+1899, c.Total(), 0.001)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := &Cart{}
	c.Add(iphone, "Preto", "256GB")
	c.Add(iphone, "Branco", "512GB")
	c.UpdateQuantity(1, "Preto", "256GB", 3)

	got := Decode(c.Encode())
	assert.Equal(t, c.Items, got.Items)
}

func TestDecodeMalformedYieldsEmptyCart(t *testing.T) {
	for _, raw := range []string{"", "not json", "{", `{"items":`} {
		c := Decode(raw)
		require.NotNil(t, c)
		assert.Empty(t, c.Items, "raw=%q", raw)
	}
}
