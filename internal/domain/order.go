// internal/domain/order.go
package domain

import "time"

// OrderSide distinguishes buy from sell orders. Both sides share one shape
// and one code path; the side only labels which currency the issuer wants.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Order is a standing intent to exchange currency. Creating an order moves
// no funds; expired orders become inert but the record is retained.
type Order struct {
	ID                  int64     `db:"order_id" json:"order_id"`
	Side                OrderSide `db:"side" json:"side"`
	IssuerID            int64     `db:"issuer_id" json:"issuer_id"`
	Amount              int64     `db:"amount" json:"amount"`
	OfferedCurrencyID   int64     `db:"offered_currency_id" json:"offered_currency_id"`
	RequestedCurrencyID int64     `db:"requested_currency_id" json:"requested_currency_id"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
	ExpiresAt           time.Time `db:"expires_at" json:"expires_at"`
}

// NewOrder creates an order expiring expiryDays after now.
func NewOrder(side OrderSide, issuerID, amount, offeredCurrencyID, requestedCurrencyID int64, expiryDays int, now time.Time) *Order {
	now = now.UTC()
	return &Order{
		Side:                side,
		IssuerID:            issuerID,
		Amount:              amount,
		OfferedCurrencyID:   offeredCurrencyID,
		RequestedCurrencyID: requestedCurrencyID,
		CreatedAt:           now,
		UpdatedAt:           now,
		ExpiresAt:           now.Add(time.Duration(expiryDays) * 24 * time.Hour),
	}
}

// Expired reports whether the order is no longer actionable at the given time.
func (o *Order) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
