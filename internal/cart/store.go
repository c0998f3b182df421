package cart

import (
	"context"

	"github.com/freshkart/storefront/internal/domain"
)

// Store persists one cart per user. Get returns an empty cart for users with
// nothing stored; the caller cannot distinguish "never shopped" from
// "cleared", and does not need to.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}
