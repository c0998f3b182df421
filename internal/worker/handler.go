package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/freshkart/storefront/internal/domain"
)

// NotificationHandler turns order.placed events into confirmation emails.
// Delivery is best-effort: the checkout already succeeded by the time an
// event reaches this handler, so failures are reported upward to be logged
// and the event is dropped.
type NotificationHandler struct {
	emailServiceURL string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewNotificationHandler(emailServiceURL string, client *http.Client, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		emailServiceURL: emailServiceURL,
		httpClient:      client,
		logger:          logger,
	}
}

func (h *NotificationHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("sending order confirmation", "order_id", event.OrderID, "user_id", event.UserID)

	if err := h.sendConfirmationEmail(ctx, event); err != nil {
		return fmt.Errorf("send confirmation email for order %s: %w", event.OrderID, err)
	}

	h.logger.Info("order confirmation sent", "order_id", event.OrderID)
	return nil
}

func (h *NotificationHandler) sendConfirmationEmail(ctx context.Context, event domain.OrderPlacedEvent) error {
	var lines strings.Builder
	for _, item := range event.Items {
		fmt.Fprintf(&lines, "%s × %d — %s\n",
			item.Name, item.Quantity, formatPaise(item.UnitPrice*int64(item.Quantity)))
	}
	fmt.Fprintf(&lines, "\nTotal: %s\n", formatPaise(event.Total))

	body := map[string]string{
		"to":      event.UserID + "@example.com",
		"subject": "Your Freshkart Order #" + event.OrderID,
		"body": fmt.Sprintf("Thanks for your order!\n\nOrder #%s\n\n%s",
			event.OrderID, lines.String()),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.emailServiceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}

func formatPaise(amount int64) string {
	return fmt.Sprintf("₹%d.%02d", amount/100, amount%100)
}
