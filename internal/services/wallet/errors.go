package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInvalidOwner        = errors.New("invalid wallet owner")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRetryExhausted      = errors.New("wallet update retries exhausted")

	// ErrVersionConflict marks a lost CAS race. It is always recovered by
	// the retry loop and never escapes Credit or Debit.
	ErrVersionConflict = errors.New("wallet version conflict")
)
