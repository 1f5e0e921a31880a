// internal/repository/postgres/order_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
)

// OrderRepository implements repository.OrderRepository for PostgreSQL.
type OrderRepository struct {
	db repository.DBExecutor
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts a new order record.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	query := `INSERT INTO orders (side, issuer_id, amount, offered_currency_id, requested_currency_id, created_at, updated_at, expires_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING order_id`
	err := r.db.QueryRowContext(ctx, query,
		order.Side,
		order.IssuerID,
		order.Amount,
		order.OfferedCurrencyID,
		order.RequestedCurrencyID,
		order.CreatedAt,
		order.UpdatedAt,
		order.ExpiresAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to create %s order for issuer %d: %w", order.Side, order.IssuerID, err)
	}
	return nil
}

// ListOrders returns up to limit orders of one side, most recent first.
func (r *OrderRepository) ListOrders(ctx context.Context, side domain.OrderSide, limit int64) ([]domain.Order, error) {
	orders := []domain.Order{}
	query := `SELECT order_id, side, issuer_id, amount, offered_currency_id, requested_currency_id, created_at, updated_at, expires_at
              FROM orders
              WHERE side = $1
              ORDER BY created_at DESC
              LIMIT $2`
	err := r.db.SelectContext(ctx, &orders, query, side, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s orders: %w", side, err)
	}
	return orders, nil
}
