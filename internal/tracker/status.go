// Package tracker derives order status from elapsed time since checkout.
// Delivery is simulated on a fixed schedule: orders go out for delivery five
// seconds after being placed and are delivered after ten.
package tracker

import (
	"context"
	"time"

	"github.com/freshkart/storefront/internal/domain"
)

const (
	OutForDeliveryAfter = 5 * time.Second
	DeliveredAfter      = 10 * time.Second
)

// NextStatus returns the status an order should have at now, given when it
// was placed. It is idempotent and monotonic: repeated application with
// non-decreasing now never regresses a status. Delivered is terminal, and any
// status outside the simulated path (cancelled included) is returned
// unchanged.
func NextStatus(status domain.OrderStatus, createdAt, now time.Time) domain.OrderStatus {
	elapsed := now.Sub(createdAt)

	switch status {
	case domain.OrderStatusProcessing:
		if elapsed >= DeliveredAfter {
			return domain.OrderStatusDelivered
		}
		if elapsed >= OutForDeliveryAfter {
			return domain.OrderStatusOutForDelivery
		}
	case domain.OrderStatusOutForDelivery:
		if elapsed >= DeliveredAfter {
			return domain.OrderStatusDelivered
		}
	}

	return status
}

// StatusStore is the write half of the order store the tracker needs.
// Updates are compare-and-set on the current status so concurrent ticks and
// eager refreshes cannot regress an order.
type StatusStore interface {
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
}

// Advance re-derives the order's status and persists the change if there is
// one. The order is mutated in place only when the write is applied; a lost
// compare-and-set means another writer got there first and the stored state
// is at least as far along.
func Advance(ctx context.Context, store StatusStore, order *domain.Order, now time.Time) error {
	next := NextStatus(order.Status, order.CreatedAt, now)
	if next == order.Status {
		return nil
	}

	applied, err := store.UpdateStatus(ctx, order.ID, order.Status, next)
	if err != nil {
		return err
	}
	if applied {
		order.Status = next
		order.UpdatedAt = now
	}
	return nil
}
