package engine

import (
	"fmt"

	"github.com/Dan9191/loan-score-service/internal/models"
	"github.com/shopspring/decimal"
)

// EligibilityFilter matches applicants against a bank catalog
type EligibilityFilter struct {
	catalog *Catalog
	limits  []decimal.Decimal
}

// NewEligibilityFilter returns a filter over catalog
func NewEligibilityFilter(catalog *Catalog) *EligibilityFilter {
	limits := make([]decimal.Decimal, len(catalog.banks))
	for i, b := range catalog.banks {
		limits[i] = decimal.NewFromFloat(b.MaxDebtToIncome)
	}
	return &EligibilityFilter{catalog: catalog, limits: limits}
}

// EligibleBanks returns, in catalog order, the names of banks whose minimum
// credit score and maximum debt-to-income the applicant satisfies. The ratio
// is the applicant's existing monthly debt over monthly income.
func (f *EligibilityFilter) EligibleBanks(user models.UserInfo) ([]string, error) {
	dti, err := DebtToIncome(user.Income, user.MonthlyDebt)
	if err != nil {
		return nil, fmt.Errorf("debt-to-income: %w", err)
	}

	eligible := []string{}
	for i, bank := range f.catalog.banks {
		if user.CreditScore >= bank.MinCreditScore && dti.LessThanOrEqual(f.limits[i]) {
			eligible = append(eligible, bank.Name)
		}
	}
	return eligible, nil
}
