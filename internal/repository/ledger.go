// internal/repository/ledger.go
package repository

import (
	"context"

	"currency-exchange/internal/domain"
)

// LedgerTx is one open atomic unit over balance rows. Every method observes
// and mutates state that no concurrent transaction can see until Commit.
// Callers must Commit or Rollback exactly once; Rollback after Commit is a
// no-op so it can be deferred unconditionally.
type LedgerTx interface {
	// BalanceForUpdate reads a wallet's balance under a write lock held until
	// the transaction ends. Missing funding rows read as 0.
	BalanceForUpdate(ctx context.Context, walletID int64) (int64, error)
	// ApplyDelta adds delta (positive or negative) to the wallet's balance
	// and returns the new amount. A delta that would drive the balance
	// negative fails with util.ErrInsufficientFunds and changes nothing.
	ApplyDelta(ctx context.Context, walletID, currencyID, delta int64) (int64, error)
	// RecordExchange writes the settlement audit row.
	RecordExchange(ctx context.Context, ex *domain.Exchange) error
	Commit() error
	Rollback() error
}

// Ledger opens atomic units over the balance store. Postgres and the
// in-memory store are the two concrete variants.
type Ledger interface {
	Begin(ctx context.Context) (LedgerTx, error)
}
