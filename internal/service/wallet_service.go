// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/util"
)

// WalletService is the wallet directory: it resolves users and (user,
// currency) pairs to wallets and balances, and funds wallets. It never moves
// money between wallets; that is the exchange engine's job.
type WalletService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	CreateWallet(ctx context.Context, userID, currencyID int64) (*domain.Wallet, error)
	FindWallet(ctx context.Context, userID, currencyID int64) (*domain.Wallet, error)
	BalanceOf(ctx context.Context, walletID int64) (int64, error)
	Fund(ctx context.Context, userID, currencyID, amount int64) (int64, error)
}

type walletService struct {
	users   repository.UserRepository
	wallets repository.WalletRepository
	ledger  repository.Ledger
	logger  *slog.Logger
}

// NewWalletService creates a new WalletService.
func NewWalletService(users repository.UserRepository, wallets repository.WalletRepository, ledger repository.Ledger, logger *slog.Logger) WalletService {
	return &walletService{
		users:   users,
		wallets: wallets,
		ledger:  ledger,
		logger:  logger,
	}
}

// CreateUser registers a new account holder.
func (s *walletService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, util.ErrInvalidInput
	}
	user := domain.NewUser(username)
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateWallet adds a wallet for a (user, currency) pair. An existing pair
// fails with util.ErrDuplicateWallet; nothing is overwritten.
func (s *walletService) CreateWallet(ctx context.Context, userID, currencyID int64) (*domain.Wallet, error) {
	if userID <= 0 || currencyID <= 0 {
		return nil, util.ErrInvalidInput
	}
	wallet := domain.NewWallet(userID, currencyID)
	if err := s.wallets.CreateWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return wallet, nil
}

// FindWallet resolves (user, currency) to a wallet.
func (s *walletService) FindWallet(ctx context.Context, userID, currencyID int64) (*domain.Wallet, error) {
	wallet, err := s.wallets.GetWalletByUserAndCurrency(ctx, userID, currencyID)
	if err != nil {
		return nil, fmt.Errorf("find wallet: %w", err)
	}
	return wallet, nil
}

// BalanceOf returns the wallet's balance, 0 for wallets never funded.
func (s *walletService) BalanceOf(ctx context.Context, walletID int64) (int64, error) {
	amount, err := s.wallets.GetBalance(ctx, walletID)
	if err != nil {
		return 0, fmt.Errorf("balance of wallet %d: %w", walletID, err)
	}
	return amount, nil
}

// Fund credits a wallet, creating it on the first funding request for the
// currency. The credit goes through a ledger transaction like every other
// balance mutation.
func (s *walletService) Fund(ctx context.Context, userID, currencyID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, util.ErrInvalidInput
	}

	wallet, err := s.wallets.GetWalletByUserAndCurrency(ctx, userID, currencyID)
	if err != nil {
		if !util.IsError(err, util.ErrWalletNotFound) {
			return 0, fmt.Errorf("fund: resolving wallet: %w", err)
		}
		wallet = domain.NewWallet(userID, currencyID)
		if err := s.wallets.CreateWallet(ctx, wallet); err != nil {
			return 0, fmt.Errorf("fund: creating wallet: %w", err)
		}
		s.logger.Info("wallet created on first funding", "user_id", userID, "currency_id", currencyID, "wallet_id", wallet.ID)
	}

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("fund: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	newAmount, err := tx.ApplyDelta(ctx, wallet.ID, wallet.CurrencyID, amount)
	if err != nil {
		return 0, fmt.Errorf("fund: applying credit: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("fund: commit: %w", err)
	}
	return newAmount, nil
}
