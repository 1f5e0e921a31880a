// internal/domain/wallet.go
package domain

import "time"

// Wallet ties a user to a single currency. A user holds one wallet per
// currency; the row is never mutated after creation. Balances live in a
// separate row keyed by wallet and default to zero until first funding.
type Wallet struct {
	ID         int64     `db:"wallet_id" json:"wallet_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	CurrencyID int64     `db:"currency_id" json:"currency_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// NewWallet creates a new Wallet instance.
func NewWallet(userID, currencyID int64) *Wallet {
	return &Wallet{
		UserID:     userID,
		CurrencyID: currencyID,
		CreatedAt:  time.Now().UTC(),
	}
}

// Balance is the funded amount of a wallet in integer minor units.
// Invariant: Amount >= 0 at all times.
type Balance struct {
	WalletID   int64     `db:"wallet_id" json:"wallet_id"`
	CurrencyID int64     `db:"currency_id" json:"currency_id"`
	Amount     int64     `db:"amount" json:"amount"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
