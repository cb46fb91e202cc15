package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAmount is the first value that does not fit into DECIMAL(15,2).
var MaxAmount = decimal.New(1, 13)

var (
	ErrAmountNegative  = errors.New("the amount must not be negative")
	ErrAmountPrecision = errors.New("the amount must not have more than two decimal places")
	ErrAmountTooLarge  = errors.New("the amount must be less than 10000000000000")
)

// ValidateAmount checks that a monetary value is not negative and fits
// into the DECIMAL(15,2) columns without rounding.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w, got %s", ErrAmountNegative, amount)
	}

	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w, got %s", ErrAmountPrecision, amount)
	}

	if amount.GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w, got %s", ErrAmountTooLarge, amount)
	}

	return nil
}
