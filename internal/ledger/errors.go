package ledger

import "errors"

var (
	ErrNotFound            = errors.New("contract not found")
	ErrValidation          = errors.New("invalid sub-element")
	ErrConcurrencyConflict = errors.New("the contract is being updated concurrently, please retry")
	ErrImmutableField      = errors.New("field cannot be changed after posting, post a compensating entry instead")
	ErrSubElementNotFound  = errors.New("sub-element not found")
)
