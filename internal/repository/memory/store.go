// internal/repository/memory/store.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository"
	"currency-exchange/internal/util"
)

// Store is a concurrency-safe in-memory implementation of the repository
// interfaces, useful for unit tests. Ledger transactions hold the balance
// mutex from Begin to Commit/Rollback, so conflicting exchanges serialize
// exactly as row locks serialize them in Postgres.
type Store struct {
	// balMu guards balances and exchanges and is held for the whole lifetime
	// of an open LedgerTx.
	balMu     sync.Mutex
	balances  map[int64]int64
	exchanges []domain.Exchange

	// dirMu guards the directory data: users, currencies, wallets, orders.
	dirMu      sync.RWMutex
	users      map[int64]domain.User
	currencies map[int64]domain.Currency
	wallets    map[int64]domain.Wallet
	orders     []domain.Order

	nextID int64
	idMu   sync.Mutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		balances:   make(map[int64]int64),
		users:      make(map[int64]domain.User),
		currencies: make(map[int64]domain.Currency),
		wallets:    make(map[int64]domain.Wallet),
	}
}

func (s *Store) nextSerial() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	s.nextID++
	return s.nextID
}

// CreateUser implements repository.UserRepository.
func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return util.ErrDuplicateEntry
		}
	}
	user.ID = s.nextSerial()
	s.users[user.ID] = *user
	return nil
}

// GetUserByID implements repository.UserRepository.
func (s *Store) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByUsername implements repository.UserRepository.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

// CreateCurrency implements repository.CurrencyRepository.
func (s *Store) CreateCurrency(_ context.Context, currency *domain.Currency) error {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()
	for _, c := range s.currencies {
		if c.Code == currency.Code {
			return util.ErrDuplicateEntry
		}
	}
	currency.ID = s.nextSerial()
	s.currencies[currency.ID] = *currency
	return nil
}

// GetCurrencyByCode implements repository.CurrencyRepository.
func (s *Store) GetCurrencyByCode(_ context.Context, code string) (*domain.Currency, error) {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	for _, c := range s.currencies {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, util.ErrCurrencyNotFound
}

// GetCurrencyByID implements repository.CurrencyRepository.
func (s *Store) GetCurrencyByID(_ context.Context, id int64) (*domain.Currency, error) {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	c, ok := s.currencies[id]
	if !ok {
		return nil, util.ErrCurrencyNotFound
	}
	return &c, nil
}

// CreateWallet implements repository.WalletRepository.
func (s *Store) CreateWallet(_ context.Context, wallet *domain.Wallet) error {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()
	for _, w := range s.wallets {
		if w.UserID == wallet.UserID && w.CurrencyID == wallet.CurrencyID {
			return util.ErrDuplicateWallet
		}
	}
	wallet.ID = s.nextSerial()
	s.wallets[wallet.ID] = *wallet
	return nil
}

// GetWalletByID implements repository.WalletRepository.
func (s *Store) GetWalletByID(_ context.Context, id int64) (*domain.Wallet, error) {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	w, ok := s.wallets[id]
	if !ok {
		return nil, util.ErrWalletNotFound
	}
	return &w, nil
}

// GetWalletByUserAndCurrency implements repository.WalletRepository.
func (s *Store) GetWalletByUserAndCurrency(_ context.Context, userID, currencyID int64) (*domain.Wallet, error) {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	for _, w := range s.wallets {
		if w.UserID == userID && w.CurrencyID == currencyID {
			return &w, nil
		}
	}
	return nil, util.ErrWalletNotFound
}

// GetBalance implements repository.WalletRepository. Unfunded wallets read
// as 0, matching the balances-row-absent case in Postgres.
func (s *Store) GetBalance(_ context.Context, walletID int64) (int64, error) {
	s.balMu.Lock()
	defer s.balMu.Unlock()
	return s.balances[walletID], nil
}

// CreateOrder implements repository.OrderRepository.
func (s *Store) CreateOrder(_ context.Context, order *domain.Order) error {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()
	order.ID = s.nextSerial()
	s.orders = append(s.orders, *order)
	return nil
}

// ListOrders implements repository.OrderRepository.
func (s *Store) ListOrders(_ context.Context, side domain.OrderSide, limit int64) ([]domain.Order, error) {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	matched := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.Side == side {
			matched = append(matched, o)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit < 0 {
		limit = 0
	}
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Begin implements repository.Ledger. The returned transaction owns the
// balance mutex until it ends; concurrent transactions queue behind it.
func (s *Store) Begin(ctx context.Context) (repository.LedgerTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.balMu.Lock()
	return &ledgerTx{store: s, staged: make(map[int64]int64)}, nil
}

// Exchanges returns a copy of the committed settlement records.
func (s *Store) Exchanges() []domain.Exchange {
	s.balMu.Lock()
	defer s.balMu.Unlock()
	out := make([]domain.Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

type ledgerTx struct {
	store     *Store
	staged    map[int64]int64
	exchanges []domain.Exchange
	done      bool
}

func (t *ledgerTx) balance(walletID int64) int64 {
	if amount, ok := t.staged[walletID]; ok {
		return amount
	}
	return t.store.balances[walletID]
}

// BalanceForUpdate returns the balance as seen by this transaction. The
// store mutex is already held, so the read is stable until the tx ends.
func (t *ledgerTx) BalanceForUpdate(ctx context.Context, walletID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return t.balance(walletID), nil
}

// ApplyDelta stages a balance change; it becomes visible on Commit.
func (t *ledgerTx) ApplyDelta(ctx context.Context, walletID, _ int64, delta int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	next := t.balance(walletID) + delta
	if next < 0 {
		return 0, util.ErrInsufficientFunds
	}
	t.staged[walletID] = next
	return next, nil
}

// RecordExchange stages the settlement record.
func (t *ledgerTx) RecordExchange(ctx context.Context, ex *domain.Exchange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ex.ID == 0 {
		ex.ID = int64(len(t.store.exchanges)+len(t.exchanges)) + 1
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}
	t.exchanges = append(t.exchanges, *ex)
	return nil
}

// Commit publishes the staged changes and releases the balance mutex.
func (t *ledgerTx) Commit() error {
	if t.done {
		return nil
	}
	for walletID, amount := range t.staged {
		t.store.balances[walletID] = amount
	}
	t.store.exchanges = append(t.store.exchanges, t.exchanges...)
	t.done = true
	t.store.balMu.Unlock()
	return nil
}

// Rollback discards staged changes. After Commit it is a no-op.
func (t *ledgerTx) Rollback() error {
	if t.done {
		return nil
	}
	t.staged = nil
	t.exchanges = nil
	t.done = true
	t.store.balMu.Unlock()
	return nil
}
