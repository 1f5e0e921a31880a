// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/util"
)

const pqCheckViolation = "23514"

// Ledger implements repository.Ledger on top of PostgreSQL transactions.
type Ledger struct {
	db *sqlx.DB
}

// NewLedger creates a new Postgres-backed Ledger.
func NewLedger(db *sqlx.DB) repository.Ledger {
	return &Ledger{db: db}
}

// Begin opens a transaction. Balance rows touched through the returned
// handle stay locked until Commit or Rollback.
func (l *Ledger) Begin(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	return &ledgerTx{tx: tx}, nil
}

type ledgerTx struct {
	tx *sqlx.Tx
}

// BalanceForUpdate reads the balance under a row-level write lock. Wallets
// without a funding row read as 0; the subsequent upsert in ApplyDelta
// creates the row.
func (t *ledgerTx) BalanceForUpdate(ctx context.Context, walletID int64) (int64, error) {
	var amount int64
	query := `SELECT amount FROM balances WHERE wallet_id = $1 FOR UPDATE`
	err := t.tx.GetContext(ctx, &amount, query, walletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to lock balance for wallet %d: %w", walletID, err)
	}
	return amount, nil
}

// ApplyDelta adds delta to the wallet's balance, creating the funding row on
// first credit. The pre-check and the CHECK (amount >= 0) constraint both
// guard non-negativity; the row lock taken here (or earlier via
// BalanceForUpdate) serializes conflicting exchanges.
func (t *ledgerTx) ApplyDelta(ctx context.Context, walletID, currencyID, delta int64) (int64, error) {
	current, err := t.BalanceForUpdate(ctx, walletID)
	if err != nil {
		return 0, err
	}
	if current+delta < 0 {
		return 0, util.ErrInsufficientFunds
	}

	var amount int64
	query := `INSERT INTO balances (wallet_id, currency_id, amount, updated_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (wallet_id) DO UPDATE
              SET amount = balances.amount + EXCLUDED.amount, updated_at = EXCLUDED.updated_at
              RETURNING amount`
	err = t.tx.QueryRowContext(ctx, query, walletID, currencyID, delta, time.Now().UTC()).Scan(&amount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqCheckViolation {
			return 0, util.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("failed to apply delta %d to wallet %d: %w", delta, walletID, err)
	}
	return amount, nil
}

// RecordExchange writes the settlement audit row inside the transaction.
func (t *ledgerTx) RecordExchange(ctx context.Context, ex *domain.Exchange) error {
	query := `INSERT INTO exchanges (reference, incoming_wallet_id, outgoing_wallet_id, sum, debit, rate, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING exchange_id`
	err := t.tx.QueryRowContext(ctx, query,
		ex.Reference,
		ex.IncomingWalletID,
		ex.OutgoingWalletID,
		ex.Sum,
		ex.Debit,
		ex.Rate,
		ex.CreatedAt,
	).Scan(&ex.ID)
	if err != nil {
		return fmt.Errorf("failed to record exchange %s: %w", ex.Reference, err)
	}
	return nil
}

func (t *ledgerTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. Calling it after Commit is a no-op so it
// can be deferred unconditionally.
func (t *ledgerTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back ledger transaction: %w", err)
	}
	return nil
}
