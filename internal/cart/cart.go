// Package cart holds the shopping cart state machine. The cart is a
// list of line items keyed by (product id, color, capacity); it lives
// serialized in the visitor's session cookie and is rehydrated on
// every request, so all operations here are plain value mutations
// with no I/O.
package cart

import (
	"encoding/json"

	"github.com/hotiphone/storefront/internal/models"
)

// LineItem is one distinct (product, color, capacity) entry with a
// quantity. The product fields are a snapshot taken at add time.
type LineItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Color     string  `json:"selectedColor"`
	Capacity  string  `json:"selectedCapacity"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) find(productID int64, color, capacity string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Color == color && item.Capacity == capacity {
			return i
		}
	}
	return -1
}

// Add appends a line item with quantity 1, or increments the quantity
// of the existing line with the same key. Stock limits are not
// enforced here.
func (c *Cart) Add(p *models.Product, color, capacity string) {
	if i := c.find(p.ID, color, capacity); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Color:     color,
		Capacity:  capacity,
		Quantity:  1,
	})
}

// UpdateQuantity sets the quantity of the matching line. Quantity 0
// removes the line; there is no upper bound. Unknown keys are a no-op.
func (c *Cart) UpdateQuantity(productID int64, color, capacity string, quantity int) {
	i := c.find(productID, color, capacity)
	if i < 0 {
		return
	}
	if quantity == 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
	c.Items[i].Quantity = quantity
}

// Remove drops the matching line. No-op if absent.
func (c *Cart) Remove(productID int64, color, capacity string) {
	if i := c.find(productID, color, capacity); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Clear empties the cart (used after a successful checkout).
func (c *Cart) Clear() {
	c.Items = nil
}

// Count is the sum of all line quantities, shown as the header badge.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Total is the cart value in reais.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Encode serializes the cart for the session cookie.
func (c *Cart) Encode() string {
	data, err := json.Marshal(c.Items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Decode rebuilds a cart from its serialized form. Absent or malformed
// content yields an empty cart; a broken cookie must never take the
// storefront down.
func Decode(raw string) *Cart {
	c := &Cart{}
	if raw == "" {
		return c
	}
	if err := json.Unmarshal([]byte(raw), &c.Items); err != nil {
		c.Items = nil
	}
	return c
}
