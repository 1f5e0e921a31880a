// internal/service/order_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/util"
)

// OrderService is the order book. Orders are standing intents: creating one
// reserves no funds, and the exchange engine neither reads nor consumes them.
type OrderService interface {
	CreateBuyOrder(ctx context.Context, issuerID, amount, buyCurrencyID, sellCurrencyID int64, expiryDays int) (*domain.Order, error)
	CreateSellOrder(ctx context.Context, issuerID, amount, sellCurrencyID, buyCurrencyID int64, expiryDays int) (*domain.Order, error)
	ListBuyOrders(ctx context.Context, limit int64) ([]domain.Order, error)
	ListSellOrders(ctx context.Context, limit int64) ([]domain.Order, error)
}

type orderService struct {
	orders     repository.OrderRepository
	currencies repository.CurrencyRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewOrderService creates a new OrderService. now supplies the clock used
// for creation and expiry timestamps; pass nil for the system clock.
func NewOrderService(orders repository.OrderRepository, currencies repository.CurrencyRepository, now func() time.Time, logger *slog.Logger) OrderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		orders:     orders,
		currencies: currencies,
		now:        now,
		logger:     logger,
	}
}

// CreateBuyOrder records an intent to acquire amount units of the buy
// currency in exchange for the sell currency.
func (s *orderService) CreateBuyOrder(ctx context.Context, issuerID, amount, buyCurrencyID, sellCurrencyID int64, expiryDays int) (*domain.Order, error) {
	return s.create(ctx, domain.OrderSideBuy, issuerID, amount, sellCurrencyID, buyCurrencyID, expiryDays)
}

// CreateSellOrder records an intent to give up amount units of the sell
// currency in exchange for the buy currency.
func (s *orderService) CreateSellOrder(ctx context.Context, issuerID, amount, sellCurrencyID, buyCurrencyID int64, expiryDays int) (*domain.Order, error) {
	return s.create(ctx, domain.OrderSideSell, issuerID, amount, sellCurrencyID, buyCurrencyID, expiryDays)
}

func (s *orderService) create(ctx context.Context, side domain.OrderSide, issuerID, amount, offeredCurrencyID, requestedCurrencyID int64, expiryDays int) (*domain.Order, error) {
	if amount <= 0 || expiryDays < 0 {
		return nil, util.ErrInvalidInput
	}
	if _, err := s.currencies.GetCurrencyByID(ctx, offeredCurrencyID); err != nil {
		return nil, fmt.Errorf("create order: offered currency: %w", err)
	}
	if _, err := s.currencies.GetCurrencyByID(ctx, requestedCurrencyID); err != nil {
		return nil, fmt.Errorf("create order: requested currency: %w", err)
	}

	order := domain.NewOrder(side, issuerID, amount, offeredCurrencyID, requestedCurrencyID, expiryDays, s.now())
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// ListBuyOrders returns up to limit buy orders, most recent first.
// A limit of 0 or less returns an empty list without touching the store.
func (s *orderService) ListBuyOrders(ctx context.Context, limit int64) ([]domain.Order, error) {
	return s.list(ctx, domain.OrderSideBuy, limit)
}

// ListSellOrders returns up to limit sell orders, most recent first.
func (s *orderService) ListSellOrders(ctx context.Context, limit int64) ([]domain.Order, error) {
	return s.list(ctx, domain.OrderSideSell, limit)
}

func (s *orderService) list(ctx context.Context, side domain.OrderSide, limit int64) ([]domain.Order, error) {
	if limit <= 0 {
		return []domain.Order{}, nil
	}
	orders, err := s.orders.ListOrders(ctx, side, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s orders: %w", side, err)
	}
	return orders, nil
}
