package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/freshkart/storefront/internal/domain"
)

// MemoryStore implements Store with a mutex-guarded map. Used in tests and
// for running the services without Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*domain.Order)}
}

func (s *MemoryStore) Create(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return ErrDuplicateID
	}

	stored := cloneOrder(order)
	s.orders[order.ID] = stored
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[id]
	if !exists {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Order{}
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *cloneOrder(order))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (s *MemoryStore) ListActive(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Order
	for _, order := range s.orders {
		if order.Status == domain.OrderStatusProcessing || order.Status == domain.OrderStatusOutForDelivery {
			out = append(out, *cloneOrder(order))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[id]
	if !exists || order.Status != from {
		return false, nil
	}

	order.Status = to
	order.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *MemoryStore) SetStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[id]
	if !exists {
		return nil, nil
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return cloneOrder(order), nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.LineItem(nil), order.Items...)
	return &clone
}
