package pricing

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/freshkart/storefront/internal/domain"
)

// Handler serves pricing quotes for display. Pure computation, no state.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	subtotal, err := strconv.ParseInt(r.URL.Query().Get("subtotal"), 10, 64)
	if err != nil || subtotal < 0 {
		h.writeError(w, http.StatusBadRequest, "subtotal must be a non-negative integer in paise")
		return
	}

	method := domain.DeliveryMethod(r.URL.Query().Get("delivery_method"))
	if !method.Valid() {
		h.writeError(w, http.StatusBadRequest, "delivery method must be standard or express")
		return
	}

	h.writeJSON(w, http.StatusOK, Compute(subtotal, method))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
