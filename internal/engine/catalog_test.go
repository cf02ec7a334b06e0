package engine

import (
	"testing"

	"github.com/Dan9191/loan-score-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Equal(t, 10, c.Len())

	banks := c.Banks()
	assert.Equal(t, "Saudi National Bank (SNB)", banks[0].Name)
	assert.Equal(t, "Gulf International Bank (GIB)", banks[9].Name)

	rajhi, ok := c.Lookup("Al Rajhi Bank")
	require.True(t, ok)
	assert.Equal(t, 650, rajhi.MinCreditScore)
	assert.Equal(t, 0.4, rajhi.MaxDebtToIncome)

	_, ok = c.Lookup("Unknown Bank")
	assert.False(t, ok)
}

func TestCatalog_BanksReturnsCopy(t *testing.T) {
	c := DefaultCatalog()

	banks := c.Banks()
	banks[0].MinCreditScore = 0

	assert.Equal(t, 700, c.Banks()[0].MinCreditScore)
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name     string
		policies []models.BankPolicy
		want     error
	}{
		{
			name: "duplicate name",
			policies: []models.BankPolicy{
				{Name: "A", MinCreditScore: 600, MaxDebtToIncome: 0.3},
				{Name: "A", MinCreditScore: 650, MaxDebtToIncome: 0.4},
			},
			want: ErrDuplicateBank,
		},
		{
			name:     "negative credit score",
			policies: []models.BankPolicy{{Name: "A", MinCreditScore: -1, MaxDebtToIncome: 0.3}},
			want:     ErrInvalidPolicy,
		},
		{
			name:     "negative ratio",
			policies: []models.BankPolicy{{Name: "A", MinCreditScore: 600, MaxDebtToIncome: -0.1}},
			want:     ErrInvalidPolicy,
		},
		{
			name:     "empty name",
			policies: []models.BankPolicy{{Name: " ", MinCreditScore: 600, MaxDebtToIncome: 0.3}},
			want:     ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.policies)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	policies := []models.BankPolicy{{Name: "A", MinCreditScore: 600, MaxDebtToIncome: 0.3}}
	c, err := NewCatalog(policies)
	require.NoError(t, err)

	policies[0].MinCreditScore = 0

	a, _ := c.Lookup("A")
	assert.Equal(t, 600, a.MinCreditScore)
}
