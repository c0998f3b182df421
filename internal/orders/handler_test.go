package orders

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/freshkart/storefront/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_HandleGet(t *testing.T) {
	t.Run("returns the order with refreshed status", func(t *testing.T) {
		store := NewMemoryStore()
		err := store.Create(context.Background(), &domain.Order{
			ID:        "123456",
			UserID:    "u1",
			Status:    domain.OrderStatusProcessing,
			CreatedAt: time.Now().UTC().Add(-11 * time.Second),
		})
		if err != nil {
			t.Fatalf("failed to seed order: %v", err)
		}

		handler := NewHandler(store, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/orders/123456", nil)
		req.SetPathValue("id", "123456")
		rec := httptest.NewRecorder()

		handler.HandleGet(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var order domain.Order
		if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if order.Status != domain.OrderStatusDelivered {
			t.Errorf("expected delivered after eager refresh, got %s", order.Status)
		}

		stored, _ := store.GetByID(context.Background(), "123456")
		if stored.Status != domain.OrderStatusDelivered {
			t.Errorf("expected refresh written back, stored status %s", stored.Status)
		}
	})

	t.Run("404 for unknown order", func(t *testing.T) {
		handler := NewHandler(NewMemoryStore(), testLogger())

		req := httptest.NewRequest(http.MethodGet, "/orders/000000", nil)
		req.SetPathValue("id", "000000")
		rec := httptest.NewRecorder()

		handler.HandleGet(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleListByUser(t *testing.T) {
	t.Run("lists newest first for the user only", func(t *testing.T) {
		store := NewMemoryStore()
		base := time.Now().UTC().Add(-time.Hour)
		for i, spec := range []struct {
			id     string
			userID string
		}{
			{"100001", "u1"},
			{"100002", "u2"},
			{"100003", "u1"},
		} {
			err := store.Create(context.Background(), &domain.Order{
				ID:        spec.id,
				UserID:    spec.userID,
				Status:    domain.OrderStatusDelivered,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			if err != nil {
				t.Fatalf("failed to seed order: %v", err)
			}
		}

		handler := NewHandler(store, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/orders?user_id=u1", nil)
		rec := httptest.NewRecorder()

		handler.HandleListByUser(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var list []domain.Order
		if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(list))
		}
		if list[0].ID != "100003" || list[1].ID != "100001" {
			t.Errorf("expected newest first [100003 100001], got [%s %s]", list[0].ID, list[1].ID)
		}
	})

	t.Run("requires user_id", func(t *testing.T) {
		handler := NewHandler(NewMemoryStore(), testLogger())

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		rec := httptest.NewRecorder()

		handler.HandleListByUser(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleUpdateStatus(t *testing.T) {
	t.Run("cancels an order", func(t *testing.T) {
		store := NewMemoryStore()
		err := store.Create(context.Background(), &domain.Order{
			ID:        "100009",
			UserID:    "u1",
			Status:    domain.OrderStatusProcessing,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("failed to seed order: %v", err)
		}

		handler := NewHandler(store, testLogger())

		req := httptest.NewRequest(http.MethodPatch, "/orders/100009/status",
			strings.NewReader(`{"status":"cancelled"}`))
		req.SetPathValue("id", "100009")
		rec := httptest.NewRecorder()

		handler.HandleUpdateStatus(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		stored, _ := store.GetByID(context.Background(), "100009")
		if stored.Status != domain.OrderStatusCancelled {
			t.Errorf("expected cancelled, got %s", stored.Status)
		}
	})

	t.Run("rejects unknown status values", func(t *testing.T) {
		handler := NewHandler(NewMemoryStore(), testLogger())

		req := httptest.NewRequest(http.MethodPatch, "/orders/100009/status",
			strings.NewReader(`{"status":"refunded"}`))
		req.SetPathValue("id", "100009")
		rec := httptest.NewRecorder()

		handler.HandleUpdateStatus(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestMemoryStore_UpdateStatus(t *testing.T) {
	store := NewMemoryStore()
	err := store.Create(context.Background(), &domain.Order{
		ID:        "100020",
		UserID:    "u1",
		Status:    domain.OrderStatusProcessing,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	applied, err := store.UpdateStatus(context.Background(), "100020",
		domain.OrderStatusProcessing, domain.OrderStatusOutForDelivery)
	if err != nil || !applied {
		t.Fatalf("expected CAS to apply, got applied=%v err=%v", applied, err)
	}

	// stale from-status loses the race
	applied, err = store.UpdateStatus(context.Background(), "100020",
		domain.OrderStatusProcessing, domain.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied {
		t.Error("expected stale CAS to be rejected")
	}

	order, _ := store.GetByID(context.Background(), "100020")
	if order.Status != domain.OrderStatusOutForDelivery {
		t.Errorf("expected out_for_delivery, got %s", order.Status)
	}
}

func TestMemoryStore_CreateDuplicate(t *testing.T) {
	store := NewMemoryStore()
	order := &domain.Order{ID: "100021", UserID: "u1", Status: domain.OrderStatusProcessing}

	if err := store.Create(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), order); err != ErrDuplicateID {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}
