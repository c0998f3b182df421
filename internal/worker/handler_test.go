package worker

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

func eventPayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(domain.OrderPlacedEvent{
		OrderID: "123456",
		UserID:  "u1",
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Organic Bananas", UnitPrice: 4500, Quantity: 2},
		},
		Total:     33_900,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return payload
}

func TestNotificationHandler_Handle(t *testing.T) {
	t.Run("posts a formatted confirmation email", func(t *testing.T) {
		var received map[string]string
		emailServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/send" {
				t.Errorf("expected /send, got %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Errorf("failed to decode email request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"sent"}`))
		}))
		defer emailServer.Close()

		handler := NewNotificationHandler(emailServer.URL, emailServer.Client(), testLogger())

		if err := handler.Handle(context.Background(), eventPayload(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if received["to"] != "u1@example.com" {
			t.Errorf("unexpected recipient: %s", received["to"])
		}
		if !strings.Contains(received["subject"], "#123456") {
			t.Errorf("expected order id in subject, got %q", received["subject"])
		}
		if !strings.Contains(received["body"], "Organic Bananas × 2 — ₹90.00") {
			t.Errorf("expected formatted line item, got %q", received["body"])
		}
		if !strings.Contains(received["body"], "Total: ₹339.00") {
			t.Errorf("expected formatted total, got %q", received["body"])
		}
	})

	t.Run("reports email service failure", func(t *testing.T) {
		emailServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer emailServer.Close()

		handler := NewNotificationHandler(emailServer.URL, emailServer.Client(), testLogger())

		if err := handler.Handle(context.Background(), eventPayload(t)); err == nil {
			t.Error("expected error when email service fails")
		}
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		handler := NewNotificationHandler("http://unused", http.DefaultClient, testLogger())

		if err := handler.Handle(context.Background(), []byte("not json")); err == nil {
			t.Error("expected error for malformed payload")
		}
	})
}

func TestFormatPaise(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0.00"},
		{5, "₹0.05"},
		{4500, "₹45.00"},
		{110_000, "₹1100.00"},
		{73_001, "₹730.01"},
	}

	for _, tt := range tests {
		if got := formatPaise(tt.amount); got != tt.want {
			t.Errorf("formatPaise(%d) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}
