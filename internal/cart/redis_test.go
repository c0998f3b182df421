package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/freshkart/storefront/internal/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisStore_GetMissing(t *testing.T) {
	store := NewRedisStore(setupTestRedis(t))

	cart, err := store.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.UserID != "u1" || len(cart.Items) != 0 {
		t.Errorf("expected empty cart for u1, got %+v", cart)
	}
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store := NewRedisStore(setupTestRedis(t))
	ctx := context.Background()

	cart := &domain.Cart{UserID: "u1"}
	cart.Add(domain.LineItem{
		ProductID: "p1",
		Name:      "Whole Wheat Bread",
		UnitPrice: 3500,
		Quantity:  2,
		Category:  "Bakery",
		Weight:    "400g",
	})
	cart.Add(domain.LineItem{ProductID: "p2", Name: "Milk", UnitPrice: 6000, Quantity: 1})

	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("failed to save cart: %v", err)
	}

	loaded, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("failed to load cart: %v", err)
	}

	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(loaded.Items))
	}
	if loaded.Items[0] != cart.Items[0] || loaded.Items[1] != cart.Items[1] {
		t.Errorf("cart did not round-trip: %+v vs %+v", loaded.Items, cart.Items)
	}
	if loaded.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set on save")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store := NewRedisStore(setupTestRedis(t))
	ctx := context.Background()

	cart := &domain.Cart{UserID: "u1"}
	cart.Add(domain.LineItem{ProductID: "p1", UnitPrice: 100, Quantity: 1})
	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("failed to save cart: %v", err)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("failed to delete cart: %v", err)
	}

	loaded, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("failed to load cart: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Errorf("expected empty cart after delete, got %d lines", len(loaded.Items))
	}

	// deleting again is a no-op
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}
