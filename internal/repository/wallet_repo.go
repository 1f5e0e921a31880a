// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"currency-exchange/internal/domain"
)

// WalletRepository defines the read/create side of the wallet directory.
// Balance mutation is deliberately absent: deltas are applied only through
// a LedgerTx so the check and the write share one atomic unit.
type WalletRepository interface {
	// CreateWallet adds a new wallet. Returns util.ErrDuplicateWallet when a
	// wallet already exists for the same (user, currency) pair.
	CreateWallet(ctx context.Context, wallet *domain.Wallet) error
	// GetWalletByID retrieves a wallet by its ID.
	GetWalletByID(ctx context.Context, id int64) (*domain.Wallet, error)
	// GetWalletByUserAndCurrency resolves (user, currency) to a wallet.
	// Returns util.ErrWalletNotFound when no such wallet exists.
	GetWalletByUserAndCurrency(ctx context.Context, userID, currencyID int64) (*domain.Wallet, error)
	// GetBalance returns the wallet's balance in minor units, 0 when the
	// wallet has no funding row yet.
	GetBalance(ctx context.Context, walletID int64) (int64, error)
}
