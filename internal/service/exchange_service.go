// internal/service/exchange_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/util"
	"currency-exchange/pkg/db"
)

// ExchangeService executes currency exchanges. Buy and sell requests run the
// same path; the caller only decides which currency is incoming and which is
// outgoing.
type ExchangeService interface {
	Exchange(ctx context.Context, req domain.ExchangeRequest) (*domain.ExchangeResult, error)
}

// exchangeService is stateless between invocations; everything about one
// exchange lives in the request and the ledger transaction.
type exchangeService struct {
	wallets     repository.WalletRepository
	ledger      repository.Ledger
	maxAttempts int
	now         func() time.Time
	logger      *slog.Logger
}

// NewExchangeService creates a new ExchangeService. maxAttempts bounds the
// retries used to resolve transient store conflicts on one exchange.
func NewExchangeService(wallets repository.WalletRepository, ledger repository.Ledger, maxAttempts int, logger *slog.Logger) ExchangeService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &exchangeService{
		wallets:     wallets,
		ledger:      ledger,
		maxAttempts: maxAttempts,
		now:         time.Now,
		logger:      logger,
	}
}

// Exchange settles one currency exchange atomically: it resolves the two
// wallets, computes the debit with the fixed rounding rule, and moves both
// balances inside a single ledger transaction. The balance check happens
// under the ledger's lock, never before it, so a concurrent exchange on the
// same wallet cannot slip between check and mutation.
func (s *exchangeService) Exchange(ctx context.Context, req domain.ExchangeRequest) (*domain.ExchangeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	incoming, err := s.wallets.GetWalletByUserAndCurrency(ctx, req.IssuerID, req.IncomingCurrencyID)
	if err != nil {
		return nil, fmt.Errorf("exchange: resolving incoming wallet: %w", err)
	}
	outgoing, err := s.wallets.GetWalletByUserAndCurrency(ctx, req.IssuerID, req.OutgoingCurrencyID)
	if err != nil {
		return nil, fmt.Errorf("exchange: resolving outgoing wallet: %w", err)
	}

	debit := req.Debit()

	var result *domain.ExchangeResult
	err = db.Retry(ctx, s.maxAttempts, func() error {
		var settleErr error
		result, settleErr = s.settle(ctx, req, incoming, outgoing, debit)
		return settleErr
	})
	if err != nil {
		if util.IsError(err, util.ErrInsufficientFunds) {
			return nil, err
		}
		s.logger.Error("exchange settlement failed",
			"issuer_id", req.IssuerID,
			"incoming_wallet_id", incoming.ID,
			"outgoing_wallet_id", outgoing.ID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", util.ErrExchangeFailed, err)
	}

	return result, nil
}

// settle runs the atomic unit: lock the outgoing balance, verify funds,
// apply the paired deltas, write the audit row, commit.
func (s *exchangeService) settle(ctx context.Context, req domain.ExchangeRequest, incoming, outgoing *domain.Wallet, debit int64) (*domain.ExchangeResult, error) {
	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	balance, err := tx.BalanceForUpdate(ctx, outgoing.ID)
	if err != nil {
		return nil, fmt.Errorf("locking outgoing balance: %w", err)
	}
	if debit > balance {
		return nil, util.ErrInsufficientFunds
	}

	newOutgoing, err := tx.ApplyDelta(ctx, outgoing.ID, outgoing.CurrencyID, -debit)
	if err != nil {
		return nil, fmt.Errorf("debiting wallet %d: %w", outgoing.ID, err)
	}
	if _, err := tx.ApplyDelta(ctx, incoming.ID, incoming.CurrencyID, req.Sum); err != nil {
		return nil, fmt.Errorf("crediting wallet %d: %w", incoming.ID, err)
	}

	record := &domain.Exchange{
		Reference:        uuid.NewString(),
		IncomingWalletID: incoming.ID,
		OutgoingWalletID: outgoing.ID,
		Sum:              req.Sum,
		Debit:            debit,
		Rate:             req.Rate,
		CreatedAt:        s.now().UTC(),
	}
	if err := tx.RecordExchange(ctx, record); err != nil {
		return nil, fmt.Errorf("recording exchange: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &domain.ExchangeResult{
		ResultingAmount:  newOutgoing,
		IncomingWalletID: incoming.ID,
		OutgoingWalletID: outgoing.ID,
		Reference:        record.Reference,
	}, nil
}
