package tracker

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/freshkart/storefront/internal/domain"
)

// Handler serves the read-only tracking API.
type Handler struct {
	store  OrderStore
	now    func() time.Time
	logger *slog.Logger
}

func NewHandler(store OrderStore, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

type trackingResponse struct {
	OrderID          string             `json:"order_id"`
	Status           domain.OrderStatus `json:"status"`
	PlacedAt         time.Time          `json:"placed_at"`
	OutForDeliveryAt *time.Time         `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time         `json:"delivered_at,omitempty"`
}

// HandleTrack returns the order's current status plus the simulated schedule
// boundaries. Loading an order through this endpoint eagerly applies any
// pending transition, the same as the orders API does.
func (h *Handler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("orderID")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if err := Advance(r.Context(), h.store, order, h.now()); err != nil {
		// serve the stored status; the next tick will catch up
		h.logger.Error("failed to advance order", "error", err, "order_id", id)
	}

	resp := trackingResponse{
		OrderID:  order.ID,
		Status:   order.Status,
		PlacedAt: order.CreatedAt,
	}
	if order.Status != domain.OrderStatusCancelled {
		out := order.CreatedAt.Add(OutForDeliveryAfter)
		delivered := order.CreatedAt.Add(DeliveredAfter)
		resp.OutForDeliveryAt = &out
		resp.DeliveredAt = &delivered
	}

	h.writeJSON(w, http.StatusOK, resp)
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
