package catalog

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freshkart/storefront/internal/domain"
)

func testHandler() *Handler {
	store := NewMemoryCatalog(
		domain.Product{ID: "p-1", Name: "Tomatoes", Price: 3200, Category: "Vegetables", Weight: "1 kg"},
		domain.Product{ID: "p-2", Name: "Paneer", Price: 9500, Category: "Dairy", Weight: "200 g"},
		domain.Product{ID: "p-3", Name: "Onions", Price: 2800, Category: "Vegetables", Weight: "1 kg"},
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, logger)
}

func TestHandleList(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var products []domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}

	// Sorted by category, then name.
	wantOrder := []string{"p-2", "p-3", "p-1"}
	for i, want := range wantOrder {
		if products[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, products[i].ID)
		}
	}
}

func TestHandleGet(t *testing.T) {
	h := testHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", h.HandleGet)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/p-2", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var product domain.Product
		if err := json.NewDecoder(rec.Body).Decode(&product); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if product.Name != "Paneer" || product.Price != 9500 {
			t.Fatalf("unexpected product: %+v", product)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/p-999", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}
