package engine

import (
	"github.com/Dan9191/loan-score-service/internal/models"
)

// Outcome classifies an evaluation
type Outcome string

const (
	OutcomeApproved       Outcome = "approved"
	OutcomeNonCompliant   Outcome = "non_compliant"
	OutcomeNoEligibleBank Outcome = "no_eligible_bank"
)

// Decision is the result of evaluating one application. Result is only
// populated when Outcome is OutcomeApproved; Violation only when it is
// OutcomeNonCompliant.
type Decision struct {
	Outcome   Outcome
	Violation Rule
	Result    models.EvaluationResult
}

// Evaluator runs compliance, eligibility and scoring in sequence
type Evaluator struct {
	compliance  *ComplianceChecker
	eligibility *EligibilityFilter
	scorer      *ScoreCalculator
}

// NewEvaluator builds an evaluator from its parts
func NewEvaluator(regs Regulations, catalog *Catalog, weights ScoreWeights) (*Evaluator, error) {
	compliance, err := NewComplianceChecker(regs)
	if err != nil {
		return nil, err
	}
	return &Evaluator{
		compliance:  compliance,
		eligibility: NewEligibilityFilter(catalog),
		scorer:      NewScoreCalculator(weights),
	}, nil
}

// Regulations returns the thresholds applied by the compliance step
func (e *Evaluator) Regulations() Regulations {
	return e.compliance.Regulations()
}

// Evaluate decides a single application. Rejections are reported through
// Decision.Outcome; the error is reserved for inputs the engine cannot
// evaluate.
func (e *Evaluator) Evaluate(app models.LoanApplication) (Decision, error) {
	rule, err := e.compliance.Check(app)
	if err != nil {
		return Decision{}, err
	}
	if rule != "" {
		return Decision{Outcome: OutcomeNonCompliant, Violation: rule}, nil
	}

	banks, err := e.eligibility.EligibleBanks(app.UserInfo)
	if err != nil {
		return Decision{}, err
	}
	if len(banks) == 0 {
		return Decision{Outcome: OutcomeNoEligibleBank}, nil
	}

	score, err := e.scorer.Score(app)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Outcome: OutcomeApproved,
		Result: models.EvaluationResult{
			LoanScore:     score,
			EligibleBanks: banks,
		},
	}, nil
}
