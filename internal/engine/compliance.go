package engine

import (
	"fmt"

	"github.com/Dan9191/loan-score-service/internal/models"
	"github.com/shopspring/decimal"
)

// Rule names a single regulatory check
type Rule string

const (
	RuleMinAge            Rule = "min_age"
	RuleMaxDebtToIncome   Rule = "max_debt_to_income"
	RuleMinCreditScore    Rule = "min_credit_score"
	RuleProhibitedPurpose Rule = "prohibited_purpose"
	RuleMaxLoanAmount     Rule = "max_loan_amount"
	RuleMaxInterestRate   Rule = "max_interest_rate"
)

// Rules lists every regulatory check in evaluation order
var Rules = []Rule{
	RuleMinAge,
	RuleMaxDebtToIncome,
	RuleMinCreditScore,
	RuleProhibitedPurpose,
	RuleMaxLoanAmount,
	RuleMaxInterestRate,
}

// SAMA defaults
const (
	DefaultMinAge          = 18
	DefaultMinCreditScore  = 650
	SpeculativeInvestment  = "Speculative Investment"
	defaultMaxDebtToIncome = "0.33"
	defaultMaxLoanAmount   = "5000000"
	defaultMaxInterestRate = "0.05"
)

// Regulations holds the national thresholds. All limits are inclusive.
type Regulations struct {
	Version            string          `json:"version,omitempty"`
	MinAge             int             `json:"min_age"`
	MaxDebtToIncome    decimal.Decimal `json:"max_debt_to_income"`
	MinCreditScore     int             `json:"min_credit_score"`
	ProhibitedPurposes []string        `json:"prohibited_purposes"`
	MaxLoanAmount      decimal.Decimal `json:"max_loan_amount"`
	MaxInterestRate    decimal.Decimal `json:"max_interest_rate"`
}

// DefaultRegulations returns the SAMA thresholds
func DefaultRegulations() Regulations {
	return Regulations{
		MinAge:             DefaultMinAge,
		MaxDebtToIncome:    decimal.RequireFromString(defaultMaxDebtToIncome),
		MinCreditScore:     DefaultMinCreditScore,
		ProhibitedPurposes: []string{SpeculativeInvestment},
		MaxLoanAmount:      decimal.RequireFromString(defaultMaxLoanAmount),
		MaxInterestRate:    decimal.RequireFromString(defaultMaxInterestRate),
	}
}

// Validate rejects negative thresholds
func (r Regulations) Validate() error {
	switch {
	case r.MinAge < 0:
		return fmt.Errorf("%w: negative min age", ErrInvalidRegulations)
	case r.MinCreditScore < 0:
		return fmt.Errorf("%w: negative min credit score", ErrInvalidRegulations)
	case r.MaxDebtToIncome.IsNegative():
		return fmt.Errorf("%w: negative max debt-to-income", ErrInvalidRegulations)
	case r.MaxLoanAmount.IsNegative():
		return fmt.Errorf("%w: negative max loan amount", ErrInvalidRegulations)
	case r.MaxInterestRate.IsNegative():
		return fmt.Errorf("%w: negative max interest rate", ErrInvalidRegulations)
	}
	return nil
}

// ComplianceChecker evaluates applications against a fixed Regulations set
type ComplianceChecker struct {
	regs       Regulations
	prohibited map[string]struct{}
}

// NewComplianceChecker validates regs and returns a checker
func NewComplianceChecker(regs Regulations) (*ComplianceChecker, error) {
	if err := regs.Validate(); err != nil {
		return nil, err
	}
	purposes := make([]string, len(regs.ProhibitedPurposes))
	copy(purposes, regs.ProhibitedPurposes)
	regs.ProhibitedPurposes = purposes

	prohibited := make(map[string]struct{}, len(purposes))
	for _, p := range purposes {
		prohibited[p] = struct{}{}
	}
	return &ComplianceChecker{regs: regs, prohibited: prohibited}, nil
}

// Regulations returns the thresholds in use
func (c *ComplianceChecker) Regulations() Regulations {
	regs := c.regs
	regs.ProhibitedPurposes = append([]string(nil), c.regs.ProhibitedPurposes...)
	return regs
}

// Check runs the regulatory battery in order and returns the first violated
// rule, or an empty Rule when the application is compliant.
func (c *ComplianceChecker) Check(app models.LoanApplication) (Rule, error) {
	user := app.UserInfo

	if user.Age < c.regs.MinAge {
		return RuleMinAge, nil
	}

	dti, err := DebtToIncome(user.Income, app.LoanOption.MonthlyPayment)
	if err != nil {
		return "", fmt.Errorf("debt-to-income: %w", err)
	}
	if dti.GreaterThan(c.regs.MaxDebtToIncome) {
		return RuleMaxDebtToIncome, nil
	}

	if user.CreditScore < c.regs.MinCreditScore {
		return RuleMinCreditScore, nil
	}

	if _, banned := c.prohibited[app.LoanRequirements.Purpose]; banned {
		return RuleProhibitedPurpose, nil
	}

	amount, err := toDecimal(app.LoanRequirements.Amount)
	if err != nil {
		return "", fmt.Errorf("loan amount: %w", err)
	}
	if amount.IsNegative() {
		return "", ErrNegativeAmount
	}
	if amount.GreaterThan(c.regs.MaxLoanAmount) {
		return RuleMaxLoanAmount, nil
	}

	rate, err := toDecimal(app.LoanOption.InterestRate)
	if err != nil {
		return "", fmt.Errorf("interest rate: %w", err)
	}
	if rate.GreaterThan(c.regs.MaxInterestRate) {
		return RuleMaxInterestRate, nil
	}

	return "", nil
}

// IsCompliant reports whether every regulatory check passes
func (c *ComplianceChecker) IsCompliant(app models.LoanApplication) (bool, error) {
	rule, err := c.Check(app)
	if err != nil {
		return false, err
	}
	return rule == "", nil
}
