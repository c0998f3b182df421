package orders

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/freshkart/storefront/internal/domain"
)

// OrderRepository implements Store on Postgres.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, subtotal, shipping_cost, tax, total,
			ship_name, ship_street, ship_city, ship_state, ship_postal_code, ship_phone,
			payment_method, delivery_method, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
	`,
		order.ID, order.UserID, order.Subtotal, order.ShippingCost, order.Tax, order.Total,
		order.ShippingInfo.Name, order.ShippingInfo.Street, order.ShippingInfo.City,
		order.ShippingInfo.State, order.ShippingInfo.PostalCode, order.ShippingInfo.Phone,
		order.PaymentMethod, order.DeliveryMethod, order.Status, order.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateID
		}
		return err
	}

	for _, item := range order.Items {
		rowID := uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, unit_price, quantity, image, category, weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, rowID, order.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity,
			item.Image, item.Category, item.Weight)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, subtotal, shipping_cost, tax, total,
		       ship_name, ship_street, ship_city, ship_state, ship_postal_code, ship_phone,
		       payment_method, delivery_method, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.UserID, &order.Subtotal, &order.ShippingCost, &order.Tax, &order.Total,
		&order.ShippingInfo.Name, &order.ShippingInfo.Street, &order.ShippingInfo.City,
		&order.ShippingInfo.State, &order.ShippingInfo.PostalCode, &order.ShippingInfo.Phone,
		&order.PaymentMethod, &order.DeliveryMethod, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, unit_price, quantity, image, category, weight
		FROM order_items
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity,
			&item.Image, &item.Category, &item.Weight); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, subtotal, shipping_cost, tax, total,
		       ship_name, ship_street, ship_city, ship_state, ship_postal_code, ship_phone,
		       payment_method, delivery_method, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.Subtotal, &order.ShippingCost, &order.Tax, &order.Total,
			&order.ShippingInfo.Name, &order.ShippingInfo.Street, &order.ShippingInfo.City,
			&order.ShippingInfo.State, &order.ShippingInfo.PostalCode, &order.ShippingInfo.Phone,
			&order.PaymentMethod, &order.DeliveryMethod, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		order.Items = []domain.LineItem{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name, unit_price, quantity, image, category, weight
		FROM order_items
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var orderID string
		var item domain.LineItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Name, &item.UnitPrice,
			&item.Quantity, &item.Image, &item.Category, &item.Weight); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Items = append(order.Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		out = append(out, *orderMap[id])
	}

	return out, nil
}

// ListActive returns order headers still on the simulated delivery path.
// Items are not loaded; the tracker only needs id, status and created_at.
func (r *OrderRepository) ListActive(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, status, created_at, updated_at
		FROM orders
		WHERE status IN ($1, $2)
		ORDER BY created_at
	`, domain.OrderStatusProcessing, domain.OrderStatusOutForDelivery)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}
