package engine

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtToIncome(t *testing.T) {
	ratio, err := DebtToIncome(10000, 3300)
	require.NoError(t, err)
	assert.True(t, ratio.Equal(decimal.RequireFromString("0.33")), "got %s", ratio)

	ratio, err = DebtToIncome(5000, 0)
	require.NoError(t, err)
	assert.True(t, ratio.IsZero())
}

func TestDebtToIncome_ZeroIncome(t *testing.T) {
	_, err := DebtToIncome(0, 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonPositiveIncome)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDebtToIncome_InvalidInputs(t *testing.T) {
	tests := []struct {
		name       string
		income     float64
		obligation float64
		want       error
	}{
		{"negative income", -100, 10, ErrNonPositiveIncome},
		{"negative obligation", 1000, -1, ErrNegativeObligation},
		{"nan income", math.NaN(), 10, ErrNonFinite},
		{"infinite obligation", 1000, math.Inf(1), ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DebtToIncome(tt.income, tt.obligation)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
