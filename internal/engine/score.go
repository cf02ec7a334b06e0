package engine

import (
	"fmt"
	"math"

	"github.com/Dan9191/loan-score-service/internal/models"
)

// Credit score range used to normalise the credit component (SIMAH scale)
const (
	MinScaleCreditScore = 300
	MaxScaleCreditScore = 900
)

// ScoreWeights weights the three score components. They should sum to 1 so
// that scores fall in [0, 100].
type ScoreWeights struct {
	Credit       float64
	DebtToIncome float64
	Amount       float64
}

// DefaultScoreWeights returns the standard weighting
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Credit: 0.5, DebtToIncome: 0.3, Amount: 0.2}
}

// ScoreCalculator computes loan scores in [0, 100]:
//
//	score = 100 * (wc*C + wd*D + wa*A)
//	C = clamp((credit_score - 300) / 600, 0, 1)
//	D = 1 - clamp(monthly_payment / income, 0, 1)
//	A = 1 / (1 + amount / (12 * income))
//
// The score never decreases as credit score rises and never increases as
// debt-to-income or amount rise. Results are rounded to two decimals.
type ScoreCalculator struct {
	weights ScoreWeights
}

// NewScoreCalculator returns a calculator using w
func NewScoreCalculator(w ScoreWeights) *ScoreCalculator {
	return &ScoreCalculator{weights: w}
}

// Score computes the loan score. Callers must only score compliant
// applications.
func (s *ScoreCalculator) Score(app models.LoanApplication) (float64, error) {
	user := app.UserInfo

	dti, err := DebtToIncome(user.Income, app.LoanOption.MonthlyPayment)
	if err != nil {
		return 0, fmt.Errorf("debt-to-income: %w", err)
	}
	amount := app.LoanRequirements.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("loan amount: %w", ErrNonFinite)
	}
	if amount < 0 {
		return 0, ErrNegativeAmount
	}

	credit := clamp(float64(user.CreditScore-MinScaleCreditScore)/float64(MaxScaleCreditScore-MinScaleCreditScore), 0, 1)
	affordability := 1 - clamp(dti.InexactFloat64(), 0, 1)
	size := 1 / (1 + amount/(12*user.Income))

	raw := 100 * (s.weights.Credit*credit + s.weights.DebtToIncome*affordability + s.weights.Amount*size)
	return math.Round(raw*100) / 100, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
