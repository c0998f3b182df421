package cart

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/freshkart/storefront/internal/domain"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type cartResponse struct {
	*domain.Cart
	Totals domain.CartTotals `json:"totals"`
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	cart, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get cart", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.service.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrProductNotFound):
			h.writeError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("failed to add cart item", "error", err, "user_id", userID)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("cart item added", "user_id", userID, "product_id", req.ProductID, "quantity", req.Quantity)
	h.writeCart(w, http.StatusOK, cart)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	productID := r.PathValue("productID")
	if userID == "" || productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing user or product id")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.service.SetQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.logger.Error("failed to set quantity", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	productID := r.PathValue("productID")
	if userID == "" || productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing user or product id")
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		h.logger.Error("failed to remove cart item", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear cart", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeCart(w http.ResponseWriter, status int, cart *domain.Cart) {
	h.writeJSON(w, status, cartResponse{Cart: cart, Totals: cart.Totals()})
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
