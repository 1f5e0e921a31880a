// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCurrencyNotFound  = errors.New("currency not found")
	ErrDuplicateWallet   = errors.New("wallet already exists for this user and currency")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrExchangeFailed    = errors.New("currency exchange failed")
)

// IsError reports whether err matches the target sentinel anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
