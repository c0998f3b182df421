package domain

import "time"

// OrderPlacedEvent is published after checkout persists the order. Consumers
// use it for fire-and-forget notification; the checkout path never waits on
// them.
type OrderPlacedEvent struct {
	OrderID   string     `json:"order_id"`
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	Total     int64      `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}
