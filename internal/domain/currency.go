// internal/domain/currency.go
package domain

// Currency is an immutable catalog entry, unique per code.
type Currency struct {
	ID   int64  `db:"currency_id" json:"currency_id"`
	Code string `db:"currency_code" json:"currency_code"`
}
