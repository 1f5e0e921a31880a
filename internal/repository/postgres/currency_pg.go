// internal/repository/postgres/currency_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/util"
)

// CurrencyRepository implements repository.CurrencyRepository for PostgreSQL.
type CurrencyRepository struct {
	db repository.DBExecutor
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(db *sqlx.DB) repository.CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// CreateCurrency inserts a catalog entry, mapping the unique code constraint
// to util.ErrDuplicateEntry.
func (r *CurrencyRepository) CreateCurrency(ctx context.Context, currency *domain.Currency) error {
	query := `INSERT INTO currencies (currency_code) VALUES ($1) RETURNING currency_id`
	err := r.db.QueryRowContext(ctx, query, currency.Code).Scan(&currency.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create currency %q: %w", currency.Code, err)
	}
	return nil
}

// GetCurrencyByCode resolves a currency code to its catalog entry.
func (r *CurrencyRepository) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	var currency domain.Currency
	query := `SELECT currency_id, currency_code FROM currencies WHERE currency_code = $1`
	err := r.db.GetContext(ctx, &currency, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to get currency by code %q: %w", code, err)
	}
	return &currency, nil
}

// GetCurrencyByID resolves a currency ID to its catalog entry.
func (r *CurrencyRepository) GetCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error) {
	var currency domain.Currency
	query := `SELECT currency_id, currency_code FROM currencies WHERE currency_id = $1`
	err := r.db.GetContext(ctx, &currency, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to get currency by ID %d: %w", id, err)
	}
	return &currency, nil
}
