// internal/repository/currency_repo.go
package repository

import (
	"context"

	"currency-exchange/internal/domain"
)

// CurrencyRepository defines the interface for the currency catalog.
type CurrencyRepository interface {
	// CreateCurrency inserts a catalog entry. Returns util.ErrDuplicateEntry
	// when the code is already registered.
	CreateCurrency(ctx context.Context, currency *domain.Currency) error
	// GetCurrencyByCode resolves a currency code to its catalog entry.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	// GetCurrencyByID resolves a currency ID to its catalog entry.
	GetCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error)
}
