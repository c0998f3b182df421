package email

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleSend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger)

	t.Run("sends email", func(t *testing.T) {
		body := `{"to": "user-1@example.com", "subject": "Your Freshkart Order #123456", "body": "thanks"}`
		req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleSend(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["status"] != "sent" {
			t.Fatalf("expected status 'sent', got %q", resp["status"])
		}
	})

	t.Run("missing recipient", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{"subject": "no recipient"}`))
		rec := httptest.NewRecorder()

		h.HandleSend(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader("not json"))
		rec := httptest.NewRecorder()

		h.HandleSend(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}
