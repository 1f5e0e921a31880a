// internal/repository/postgres/wallet_pg.go
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

const pqUniqueViolation = "23505"

// WalletRepository implements repository.WalletRepository for PostgreSQL.
// Queries run through repository.DBExecutor, so the same repository works
// against the pool or an open transaction.
type WalletRepository struct {
	db repository.DBExecutor
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{db: db}
}

// CreateWallet inserts a new wallet. The unique (user_id, currency_id)
// constraint maps to util.ErrDuplicateWallet; an existing wallet is never
// overwritten.
func (r *WalletRepository) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, currency_id, created_at)
              VALUES ($1, $2, $3) RETURNING wallet_id`
	err := r.db.QueryRowContext(ctx, query, wallet.UserID, wallet.CurrencyID, wallet.CreatedAt).Scan(&wallet.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return util.ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet for user %d: %w", wallet.UserID, err)
	}
	return nil
}

// GetWalletByID retrieves a wallet by its ID.
func (r *WalletRepository) GetWalletByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT wallet_id, user_id, currency_id, created_at FROM wallets WHERE wallet_id = $1`
	err := r.db.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by ID %d: %w", id, err)
	}
	return &wallet, nil
}

// GetWalletByUserAndCurrency resolves a (user, currency) pair to a wallet.
func (r *WalletRepository) GetWalletByUserAndCurrency(ctx context.Context, userID, currencyID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT wallet_id, user_id, currency_id, created_at FROM wallets
              WHERE user_id = $1 AND currency_id = $2`
	err := r.db.GetContext(ctx, &wallet, query, userID, currencyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for user %d currency %d: %w", userID, currencyID, err)
	}
	return &wallet, nil
}

// GetBalance returns the wallet's funded amount, 0 when no funding row
// exists yet.
func (r *WalletRepository) GetBalance(ctx context.Context, walletID int64) (int64, error) {
	var amount int64
	query := `SELECT amount FROM balances WHERE wallet_id = $1`
	err := r.db.GetContext(ctx, &amount, query, walletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance for wallet %d: %w", walletID, err)
	}
	return amount, nil
}
