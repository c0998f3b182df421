package orders

import (
	"context"
	"errors"

	"github.com/freshkart/storefront/internal/domain"
)

// ErrDuplicateID is returned by Create when the generated order id is already
// taken. Checkout retries with a fresh id.
var ErrDuplicateID = errors.New("order id already exists")

// Store is the order persistence contract. Reads return (nil, nil) for
// not-found. UpdateStatus is compare-and-set so interleaved tracker ticks and
// eager refreshes serialize per order; SetStatus is the unconditional admin
// override and the only path that can produce a cancelled order.
type Store interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListActive(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
