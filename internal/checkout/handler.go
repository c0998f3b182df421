package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("checkout failed", "error", err, "user_id", req.UserID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingUser) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrIncompleteShipping) ||
		errors.Is(err, ErrMissingPaymentMethod) ||
		errors.Is(err, ErrInvalidDeliveryMethod)
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
