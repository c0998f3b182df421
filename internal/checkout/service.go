// Package checkout turns a cart into an order: validates the request, prices
// the cart, persists the order and kicks off notification. The cart is the
// unit of input and is emptied only after the order is safely stored.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/freshkart/storefront/internal/cart"
	"github.com/freshkart/storefront/internal/domain"
	"github.com/freshkart/storefront/internal/orders"
	"github.com/freshkart/storefront/internal/pricing"
)

var (
	ErrMissingUser           = errors.New("user id is required")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrIncompleteShipping    = errors.New("shipping name, street, city, state and postal code are required")
	ErrMissingPaymentMethod  = errors.New("payment method is required")
	ErrInvalidDeliveryMethod = errors.New("delivery method must be standard or express")
)

// Publisher is the order-placed event sink. Satisfied by messaging.Producer;
// may be nil when no brokers are configured.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Request struct {
	UserID         string                `json:"user_id"`
	ShippingInfo   domain.ShippingInfo   `json:"shipping_info"`
	PaymentMethod  string                `json:"payment_method"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method"`
}

type Service struct {
	carts     cart.Store
	orders    orders.Store
	publisher Publisher
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

func NewService(carts cart.Store, orderStore orders.Store, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		carts:     carts,
		orders:    orderStore,
		publisher: publisher,
		now:       time.Now,
		newID:     newOrderID,
		logger:    logger,
	}
}

// PlaceOrder runs the checkout. Validation failures return before any state
// changes; publish and cart-clear failures after the order is persisted are
// logged and do not fail the checkout.
func (s *Service) PlaceOrder(ctx context.Context, req Request) (*domain.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	userCart, err := s.carts.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(userCart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := userCart.Totals()
	breakdown := pricing.Compute(totals.TotalPrice, req.DeliveryMethod)
	now := s.now().UTC()

	order := &domain.Order{
		UserID:         req.UserID,
		Items:          append([]domain.LineItem(nil), userCart.Items...),
		Subtotal:       breakdown.Subtotal,
		ShippingCost:   breakdown.ShippingCost,
		Tax:            breakdown.Tax,
		Total:          breakdown.Total,
		ShippingInfo:   req.ShippingInfo,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
		Status:         domain.OrderStatusProcessing,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.createWithRetry(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	if s.publisher != nil {
		event := domain.OrderPlacedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Items:     order.Items,
			Total:     order.Total,
			Timestamp: order.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, order.ID, event); err != nil {
			s.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	if err := s.carts.Delete(ctx, req.UserID); err != nil {
		s.logger.Error("failed to clear cart after checkout", "error", err, "user_id", req.UserID)
	}

	s.logger.Info("order placed", "order_id", order.ID, "user_id", order.UserID, "total", order.Total)
	return order, nil
}

// createWithRetry regenerates the 6-digit id on a collision. The id space is
// small enough that collisions happen in practice.
func (s *Service) createWithRetry(ctx context.Context, order *domain.Order) error {
	const maxAttempts = 5

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		order.ID = s.newID()
		err = s.orders.Create(ctx, order)
		if !errors.Is(err, orders.ErrDuplicateID) {
			return err
		}
	}
	return err
}

func validate(req Request) error {
	if req.UserID == "" {
		return ErrMissingUser
	}
	ship := req.ShippingInfo
	if ship.Name == "" || ship.Street == "" || ship.City == "" || ship.State == "" || ship.PostalCode == "" {
		return ErrIncompleteShipping
	}
	if req.PaymentMethod == "" {
		return ErrMissingPaymentMethod
	}
	if !req.DeliveryMethod.Valid() {
		return ErrInvalidDeliveryMethod
	}
	return nil
}

func newOrderID() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
