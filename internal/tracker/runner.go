package tracker

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/freshkart/storefront/internal/domain"
)

// OrderStore is the order store surface the tracker service depends on.
type OrderStore interface {
	StatusStore
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListActive(ctx context.Context) ([]domain.Order, error)
}

// Runner polls the order store and advances every active order. A failure on
// one order is logged and does not stop the tick or the loop.
type Runner struct {
	store       OrderStore
	interval    time.Duration
	now         func() time.Time
	logger      *slog.Logger
	transitions metric.Int64Counter
}

func NewRunner(store OrderStore, interval time.Duration, logger *slog.Logger) *Runner {
	meter := otel.Meter("freshkart/tracker")
	transitions, err := meter.Int64Counter("freshkart.orders.transitions",
		metric.WithDescription("Order status transitions applied by the tracker"),
	)
	if err != nil {
		logger.Error("failed to create transitions counter", "error", err)
	}

	return &Runner{
		store:       store,
		interval:    interval,
		now:         time.Now,
		logger:      logger,
		transitions: transitions,
	}
}

// WithClock overrides the time source. Tests use it to step through the
// transition boundaries deterministically.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick performs one read-derive-write pass over all active orders.
func (r *Runner) Tick(ctx context.Context) {
	active, err := r.store.ListActive(ctx)
	if err != nil {
		r.logger.Error("failed to list active orders", "error", err)
		return
	}

	now := r.now()
	for i := range active {
		order := &active[i]
		prev := order.Status

		if err := Advance(ctx, r.store, order, now); err != nil {
			r.logger.Error("failed to advance order", "error", err, "order_id", order.ID)
			continue
		}

		if order.Status != prev {
			r.logger.Info("order status advanced",
				"order_id", order.ID, "from", prev, "to", order.Status)
			if r.transitions != nil {
				r.transitions.Add(ctx, 1, metric.WithAttributes(
					attribute.String("status", string(order.Status)),
				))
			}
		}
	}
}
