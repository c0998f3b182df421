package domain

import "time"

// Cart is an insertion-ordered collection of line items, one per product id.
// Stored quantities are always >= 1; setting a quantity to zero or below
// removes the line.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartTotals struct {
	TotalItems int   `json:"total_items"`
	TotalPrice int64 `json:"total_price"`
}

// Add merges quantity into an existing line for the same product, or appends
// a new line. Quantities below 1 are ignored.
func (c *Cart) Add(item LineItem) {
	if item.Quantity < 1 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets the line quantity exactly; zero or below removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Totals() CartTotals {
	var totals CartTotals
	for _, item := range c.Items {
		totals.TotalItems += item.Quantity
		totals.TotalPrice += item.UnitPrice * int64(item.Quantity)
	}
	return totals
}
