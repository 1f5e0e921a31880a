// internal/domain/exchange.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"currency-exchange/internal/util"
)

// ExchangeRequest describes one currency exchange: the issuer receives Sum
// units of the incoming currency and pays round(Sum * Rate) units of the
// outgoing currency. The caller guarantees the acting identity equals
// IssuerID before the engine is invoked.
type ExchangeRequest struct {
	Sum                int64           `json:"sum"`
	Rate               decimal.Decimal `json:"rate"`
	IssuerID           int64           `json:"order_issuer_id"`
	IncomingCurrencyID int64           `json:"incoming_currency_id"`
	OutgoingCurrencyID int64           `json:"outgoing_currency_id"`
}

// Validate checks the request preconditions: Sum and Rate must be positive.
func (r ExchangeRequest) Validate() error {
	if r.Sum <= 0 {
		return util.ErrInvalidInput
	}
	if r.Rate.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidInput
	}
	return nil
}

// Debit computes the amount of outgoing currency to pay, rounded half-up to
// the nearest minor unit. Decimal arithmetic keeps repeated exchanges
// reproducible; binary floating point would drift.
func (r ExchangeRequest) Debit() int64 {
	// decimal.Round rounds half away from zero; Sum and Rate are positive
	// here, so this is exactly round-half-up.
	return decimal.NewFromInt(r.Sum).Mul(r.Rate).Round(0).IntPart()
}

// ExchangeResult is the settlement record returned to the caller. It is
// never persisted apart from the balance rows and audit row it reflects.
type ExchangeResult struct {
	ResultingAmount  int64  `json:"resulting_amount"`
	IncomingWalletID int64  `json:"incoming_wallet_id"`
	OutgoingWalletID int64  `json:"outgoing_wallet_id"`
	Reference        string `json:"reference"`
}

// Exchange is the audit row written inside the same transaction as the
// paired balance movements.
type Exchange struct {
	ID               int64           `db:"exchange_id" json:"exchange_id"`
	Reference        string          `db:"reference" json:"reference"`
	IncomingWalletID int64           `db:"incoming_wallet_id" json:"incoming_wallet_id"`
	OutgoingWalletID int64           `db:"outgoing_wallet_id" json:"outgoing_wallet_id"`
	Sum              int64           `db:"sum" json:"sum"`
	Debit            int64           `db:"debit" json:"debit"`
	Rate             decimal.Decimal `db:"rate" json:"rate"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
