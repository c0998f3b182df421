// Package cart owns the per-user cart: line items snapshotted from the
// catalog, merged and re-quantified until checkout empties it.
package cart

import (
	"context"
	"errors"

	"github.com/freshkart/storefront/internal/domain"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found")
)

// Catalog is the product lookup the cart needs to snapshot line-item fields.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	carts    Store
	products Catalog
}

func NewService(carts Store, products Catalog) *Service {
	return &Service{carts: carts, products: products}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddItem snapshots the product into the cart, merging quantity into an
// existing line for the same product. No state is written on validation
// failure.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Add(product.LineItem(quantity))

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity sets a line's quantity exactly; zero or below removes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(productID, quantity)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.SetQuantity(ctx, userID, productID, 0)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.carts.Delete(ctx, userID)
}
