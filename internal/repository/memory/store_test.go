// internal/repository/memory/store_test.go
package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-exchange/internal/domain"
	"currency-exchange/internal/util"
)

func TestStoreDirectory(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	user := domain.NewUser("alice")
	require.NoError(t, s.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	err := s.CreateUser(ctx, domain.NewUser("alice"))
	assert.ErrorIs(t, err, util.ErrDuplicateEntry)

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetUserByID(ctx, user.ID+1)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	usd := &domain.Currency{Code: "USD"}
	require.NoError(t, s.CreateCurrency(ctx, usd))
	err = s.CreateCurrency(ctx, &domain.Currency{Code: "USD"})
	assert.ErrorIs(t, err, util.ErrDuplicateEntry)

	byCode, err := s.GetCurrencyByCode(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, usd.ID, byCode.ID)
}

func TestStoreWallets(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	w := domain.NewWallet(1, 2)
	require.NoError(t, s.CreateWallet(ctx, w))

	err := s.CreateWallet(ctx, domain.NewWallet(1, 2))
	assert.ErrorIs(t, err, util.ErrDuplicateWallet)

	// Same user, different currency is a distinct wallet.
	require.NoError(t, s.CreateWallet(ctx, domain.NewWallet(1, 3)))

	got, err := s.GetWalletByUserAndCurrency(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)

	_, err = s.GetWalletByUserAndCurrency(ctx, 1, 99)
	assert.ErrorIs(t, err, util.ErrWalletNotFound)

	// Never funded reads as zero, not as an error.
	amount, err := s.GetBalance(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)
}

func TestStoreLedgerCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.ApplyDelta(ctx, 1, 2, 100)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	amount, err := s.GetBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount)

	// Rolled-back changes never land.
	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.ApplyDelta(ctx, 1, 2, -40)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	amount, err = s.GetBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount)
}

func TestStoreLedgerRejectsNegativeBalance(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ApplyDelta(ctx, 1, 2, -1)
	assert.ErrorIs(t, err, util.ErrInsufficientFunds)
}

func TestStoreListOrders(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		o := domain.NewOrder(domain.OrderSideBuy, 1, int64(10+i), 1, 2, 7, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.CreateOrder(ctx, o))
	}
	require.NoError(t, s.CreateOrder(ctx, domain.NewOrder(domain.OrderSideSell, 1, 99, 2, 1, 7, base)))

	// Most recent first, capped at limit, side filtered.
	orders, err := s.ListOrders(ctx, domain.OrderSideBuy, 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(12), orders[0].Amount)
	assert.Equal(t, int64(11), orders[1].Amount)

	orders, err = s.ListOrders(ctx, domain.OrderSideSell, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(99), orders[0].Amount)

	orders, err = s.ListOrders(ctx, domain.OrderSideBuy, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)

	orders, err = s.ListOrders(ctx, domain.OrderSideBuy, -1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
