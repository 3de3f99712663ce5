// Package money converts between decimal prices and the integer cents stored
// in the database.
package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits a price may carry.
const Scale = 2

var (
	ErrNegative  = errors.New("amount must not be negative")
	ErrPrecision = errors.New("amount has more than two fractional digits")
	ErrOverflow  = errors.New("amount is too large")
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ToCents converts a non-negative price with at most two fractional digits
// whose cent value fits in an int64.
func ToCents(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, ErrNegative
	}
	if !d.Equal(d.Round(Scale)) {
		return 0, ErrPrecision
	}
	cents := d.Shift(Scale)
	if cents.GreaterThan(maxCents) {
		return 0, ErrOverflow
	}
	return cents.IntPart(), nil
}

func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -Scale)
}

// Line returns unit × quantity.
func Line(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}
