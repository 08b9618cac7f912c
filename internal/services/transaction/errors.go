package transaction

import "errors"

// Service errors
var (
	ErrInvalidAmount    = errors.New("invalid transaction amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidParties   = errors.New("invalid transaction parties")
	ErrAlreadyProcessed = errors.New("transaction already processed")
	ErrNotFound         = errors.New("transaction not found")
)
