package domain

import "time"

type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	// OrderStatusCancelled is set through the admin status override only,
	// never by the lifecycle tracker.
	OrderStatusCancelled OrderStatus = "cancelled"
)

type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryStandard || m == DeliveryExpress
}

// LineItem is a product snapshot plus quantity. In a cart it is owned by the
// cart service; at checkout it is copied by value into the order.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
	Category  string `json:"category,omitempty"`
	Weight    string `json:"weight,omitempty"`
}

type ShippingInfo struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone,omitempty"`
}

// PricingBreakdown holds derived amounts in paise. It is never persisted on
// its own; the amounts are denormalized onto the order at checkout.
type PricingBreakdown struct {
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	Tax          int64 `json:"tax"`
	Total        int64 `json:"total"`
}

// Order is created once at checkout and immutable afterwards except for
// Status and UpdatedAt.
type Order struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Items          []LineItem     `json:"items"`
	Subtotal       int64          `json:"subtotal"`
	ShippingCost   int64          `json:"shipping_cost"`
	Tax            int64          `json:"tax"`
	Total          int64          `json:"total"`
	ShippingInfo   ShippingInfo   `json:"shipping_info"`
	PaymentMethod  string         `json:"payment_method"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Status         OrderStatus    `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
