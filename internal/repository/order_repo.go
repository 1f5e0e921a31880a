// internal/repository/order_repo.go
package repository

import (
	"context"

	"currency-exchange/internal/domain"
)

// OrderRepository defines the interface for order data operations.
type OrderRepository interface {
	// CreateOrder inserts a new order and fills in its generated ID.
	CreateOrder(ctx context.Context, order *domain.Order) error
	// ListOrders returns up to limit orders of the given side, most recent
	// first. Expired orders are included; they are inert, not hidden.
	ListOrders(ctx context.Context, side domain.OrderSide, limit int64) ([]domain.Order, error)
}
