package engine

import (
	"testing"

	"github.com/Dan9191/loan-score-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreOf(t *testing.T, s *ScoreCalculator, app models.LoanApplication) float64 {
	t.Helper()
	v, err := s.Score(app)
	require.NoError(t, err)
	return v
}

func TestScore_Range(t *testing.T) {
	s := NewScoreCalculator(DefaultScoreWeights())

	best := compliantApp()
	best.UserInfo.CreditScore = 900
	best.LoanOption.MonthlyPayment = 1
	best.LoanRequirements.Amount = 1
	assert.InDelta(t, 100, scoreOf(t, s, best), 0.01)

	worst := compliantApp()
	worst.UserInfo.CreditScore = 0
	worst.LoanOption.MonthlyPayment = worst.UserInfo.Income * 2
	worst.LoanRequirements.Amount = 1e12
	assert.InDelta(t, 0, scoreOf(t, s, worst), 0.01)
}

func TestScore_NonDecreasingInCreditScore(t *testing.T) {
	s := NewScoreCalculator(DefaultScoreWeights())

	prev := -1.0
	for cs := 200; cs <= 1000; cs += 25 {
		app := compliantApp()
		app.UserInfo.CreditScore = cs
		got := scoreOf(t, s, app)
		assert.GreaterOrEqual(t, got, prev, "credit score %d", cs)
		prev = got
	}
}

func TestScore_NonIncreasingInDebtToIncome(t *testing.T) {
	s := NewScoreCalculator(DefaultScoreWeights())

	prev := 101.0
	for payment := 0.0; payment <= 12000; payment += 250 {
		app := compliantApp()
		app.LoanOption.MonthlyPayment = payment
		got := scoreOf(t, s, app)
		assert.LessOrEqual(t, got, prev, "payment %.0f", payment)
		prev = got
	}
}

func TestScore_NonIncreasingInAmount(t *testing.T) {
	s := NewScoreCalculator(DefaultScoreWeights())

	prev := 101.0
	for amount := 1000.0; amount <= 5_000_000; amount *= 2 {
		app := compliantApp()
		app.LoanRequirements.Amount = amount
		got := scoreOf(t, s, app)
		assert.LessOrEqual(t, got, prev, "amount %.0f", amount)
		prev = got
	}
}

func TestScore_StrictlyBetterApplicantScoresHigher(t *testing.T) {
	s := NewScoreCalculator(DefaultScoreWeights())

	weak := compliantApp()
	strong := compliantApp()
	strong.UserInfo.CreditScore = 800
	strong.LoanOption.MonthlyPayment = 1500
	strong.LoanRequirements.Amount = 100000

	assert.Greater(t, scoreOf(t, s, strong), scoreOf(t, s, weak))
}

func TestScore_Deterministic(t *testing.T) {
	s := NewScoreCalculator(DefaultScoreWeights())
	assert.Equal(t, scoreOf(t, s, compliantApp()), scoreOf(t, s, compliantApp()))
}

func TestScore_InvalidInput(t *testing.T) {
	s := NewScoreCalculator(DefaultScoreWeights())

	app := compliantApp()
	app.UserInfo.Income = 0
	_, err := s.Score(app)
	assert.ErrorIs(t, err, ErrInvalidInput)

	app = compliantApp()
	app.LoanRequirements.Amount = -5
	_, err = s.Score(app)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
