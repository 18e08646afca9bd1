// Package money parses and formats monetary amounts for listings and bids.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"auction_backend/internal/shared/apperr"
)

// Precision is the number of decimal places an amount may carry (cents).
const Precision int32 = 2

// maxAmount is the exclusive upper bound that fits a DECIMAL(12,2) column.
var maxAmount = decimal.New(1, 10)

// Parse converts a user supplied amount into a decimal.
// The amount must be positive, below 10^10 and have at most two decimal places.
func Parse(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", apperr.ErrInvalidInput, raw)
	}
	if err := Validate(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Validate checks an already parsed amount against the same rules as Parse.
func Validate(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperr.ErrInvalidInput)
	}
	if !d.Equal(d.Round(Precision)) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", apperr.ErrInvalidInput, Precision)
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: amount is too large", apperr.ErrInvalidInput)
	}
	return nil
}

// Format renders an amount with exactly two decimal places, e.g. "15.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(Precision)
}
