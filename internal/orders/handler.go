package orders

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/freshkart/storefront/internal/domain"
	"github.com/freshkart/storefront/internal/tracker"
)

// Handler serves order retrieval and the admin status override. Order
// creation happens through checkout.
type Handler struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
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

	// loading an order applies any transition due since the last tick
	if err := tracker.Advance(r.Context(), h.store, order, h.now()); err != nil {
		h.logger.Error("failed to advance order", "error", err, "order_id", id)
	}

	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "missing user_id")
		return
	}

	list, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	now := h.now()
	for i := range list {
		if err := tracker.Advance(r.Context(), h.store, &list[i], now); err != nil {
			h.logger.Error("failed to advance order", "error", err, "order_id", list[i].ID)
		}
	}

	h.logger.Info("orders listed", "user_id", userID, "count", len(list))
	h.writeJSON(w, http.StatusOK, list)
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// HandleUpdateStatus is the admin override and the only producer of the
// cancelled status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Status {
	case domain.OrderStatusProcessing, domain.OrderStatusOutForDelivery,
		domain.OrderStatusDelivered, domain.OrderStatusCancelled:
	default:
		h.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	order, err := h.store.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("failed to update order status", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.logger.Info("order status overridden", "order_id", order.ID, "status", order.Status)
	h.writeJSON(w, http.StatusOK, order)
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
