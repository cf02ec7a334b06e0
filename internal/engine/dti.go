package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// DebtToIncome returns obligation / income. Both values must share the same
// period. Income must be strictly positive.
func DebtToIncome(income, obligation float64) (decimal.Decimal, error) {
	in, err := toDecimal(income)
	if err != nil {
		return decimal.Zero, err
	}
	if !in.IsPositive() {
		return decimal.Zero, ErrNonPositiveIncome
	}
	ob, err := toDecimal(obligation)
	if err != nil {
		return decimal.Zero, err
	}
	if ob.IsNegative() {
		return decimal.Zero, ErrNegativeObligation
	}
	return ob.Div(in), nil
}

// toDecimal converts a float using its shortest representation, so 0.33
// becomes exactly 0.33.
func toDecimal(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, ErrNonFinite
	}
	return decimal.NewFromFloat(v), nil
}
