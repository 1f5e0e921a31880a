// internal/service/exchange_memory_test.go
//
// End-to-end tests of the exchange engine against the in-memory store, which
// serializes ledger transactions the same way Postgres row locks do. These
// cover the behavior the mocks cannot: real balances under real concurrency.
package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/repository/memory"
	"currency-exchange/internal/util"
)

type memoryFixture struct {
	store    *memory.Store
	user     *domain.User
	usd, eur *domain.Currency
	usdW     *domain.Wallet
	eurW     *domain.Wallet
}

// newMemoryFixture builds a user with a USD and a EUR wallet, the EUR wallet
// funded with the given balance.
func newMemoryFixture(t *testing.T, eurBalance int64) *memoryFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	user := domain.NewUser("trader")
	require.NoError(t, store.CreateUser(ctx, user))

	usd := &domain.Currency{Code: "USD"}
	eur := &domain.Currency{Code: "EUR"}
	require.NoError(t, store.CreateCurrency(ctx, usd))
	require.NoError(t, store.CreateCurrency(ctx, eur))

	usdW := domain.NewWallet(user.ID, usd.ID)
	eurW := domain.NewWallet(user.ID, eur.ID)
	require.NoError(t, store.CreateWallet(ctx, usdW))
	require.NoError(t, store.CreateWallet(ctx, eurW))

	if eurBalance > 0 {
		tx, err := store.Begin(ctx)
		require.NoError(t, err)
		_, err = tx.ApplyDelta(ctx, eurW.ID, eur.ID, eurBalance)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
	}

	return &memoryFixture{store: store, user: user, usd: usd, eur: eur, usdW: usdW, eurW: eurW}
}

func (f *memoryFixture) request(sum int64, rate string) domain.ExchangeRequest {
	return domain.ExchangeRequest{
		Sum:                sum,
		Rate:               decimal.RequireFromString(rate),
		IssuerID:           f.user.ID,
		IncomingCurrencyID: f.usd.ID,
		OutgoingCurrencyID: f.eur.ID,
	}
}

func (f *memoryFixture) balances(t *testing.T) (usd, eur int64) {
	t.Helper()
	ctx := context.Background()
	usd, err := f.store.GetBalance(ctx, f.usdW.ID)
	require.NoError(t, err)
	eur, err = f.store.GetBalance(ctx, f.eurW.ID)
	require.NoError(t, err)
	return usd, eur
}

func TestExchangeAgainstStore(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t, 100)
	svc := NewExchangeService(f.store, f.store, 3, slog.Default())

	// 100 USD at 0.8 costs 80 EUR out of 100.
	result, err := svc.Exchange(ctx, f.request(100, "0.8"))
	require.NoError(t, err)
	assert.Equal(t, int64(20), result.ResultingAmount)

	usd, eur := f.balances(t)
	assert.Equal(t, int64(100), usd)
	assert.Equal(t, int64(20), eur)

	records := f.store.Exchanges()
	require.Len(t, records, 1)
	assert.Equal(t, int64(80), records[0].Debit)
	assert.NotEmpty(t, records[0].Reference)

	// The same request again needs 80 EUR but only 20 remain.
	_, err = svc.Exchange(ctx, f.request(100, "0.8"))
	assert.ErrorIs(t, err, util.ErrInsufficientFunds)

	// Nothing moved on the failed attempt.
	usd, eur = f.balances(t)
	assert.Equal(t, int64(100), usd)
	assert.Equal(t, int64(20), eur)
	assert.Len(t, f.store.Exchanges(), 1)
}

func TestExchangeMissingWalletLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t, 100)
	svc := NewExchangeService(f.store, f.store, 3, slog.Default())

	req := f.request(100, "0.8")
	req.IssuerID = f.user.ID + 999

	_, err := svc.Exchange(ctx, req)
	assert.ErrorIs(t, err, util.ErrWalletNotFound)

	usd, eur := f.balances(t)
	assert.Equal(t, int64(0), usd)
	assert.Equal(t, int64(100), eur)
	assert.Empty(t, f.store.Exchanges())
}

// Two racing exchanges that each need 60 out of a 100 balance: exactly one
// wins, the loser sees the post-debit balance under the lock and fails clean.
func TestExchangeConcurrentDebitsOneWins(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t, 100)
	svc := NewExchangeService(f.store, f.store, 3, slog.Default())

	req := f.request(75, "0.8") // debit 60

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Exchange(ctx, req)
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case util.IsError(err, util.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)

	usd, eur := f.balances(t)
	assert.Equal(t, int64(75), usd)
	assert.Equal(t, int64(40), eur)
	assert.Len(t, f.store.Exchanges(), 1)
}

// Many concurrent exchanges over one funded wallet: the number of winners is
// exactly the balance divided by the debit, the balance never goes negative,
// and every unit debited is accounted for by a settlement record.
func TestExchangeConcurrentConservation(t *testing.T) {
	const (
		workers    = 50
		eurBalance = 200
	)
	ctx := context.Background()
	f := newMemoryFixture(t, eurBalance)
	svc := NewExchangeService(f.store, f.store, 3, slog.Default())

	req := f.request(10, "1") // debit 10, so 20 of 50 can win

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Exchange(ctx, req)
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case util.IsError(err, util.ErrInsufficientFunds):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 20, succeeded)

	// At rate 1 every debited unit arrives on the other side.
	usd, eur := f.balances(t)
	assert.Equal(t, int64(0), eur)
	assert.Equal(t, int64(eurBalance), usd)

	records := f.store.Exchanges()
	require.Len(t, records, succeeded)
	var debited int64
	for _, r := range records {
		debited += r.Debit
	}
	assert.Equal(t, int64(eurBalance), debited)
}

// Orders never interact with exchanges: a standing order, expired or not,
// reserves nothing and an exchange consumes nothing from it.
func TestOrdersDoNotAffectExchanges(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t, 100)
	exSvc := NewExchangeService(f.store, f.store, 3, slog.Default())
	ordSvc := NewOrderService(f.store, f.store, nil, slog.Default())

	// An order expiring today is created fine and shows up in listings.
	order, err := ordSvc.CreateSellOrder(ctx, f.user.ID, 100, f.eur.ID, f.usd.ID, 0)
	require.NoError(t, err)

	listed, err := ordSvc.ListSellOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, order.ID, listed[0].ID)

	// The exchange settles independently of the order book.
	_, err = exSvc.Exchange(ctx, f.request(100, "0.8"))
	require.NoError(t, err)

	listed, err = ordSvc.ListSellOrders(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
