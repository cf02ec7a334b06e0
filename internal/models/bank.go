package models

// BankPolicy holds a single bank's lending thresholds
type BankPolicy struct {
	Name            string  `json:"name" yaml:"name"`
	URL             string  `json:"url" yaml:"url"`
	MinCreditScore  int     `json:"min_credit_score" yaml:"min_credit_score"`
	MaxDebtToIncome float64 `json:"max_debt_to_income" yaml:"max_debt_to_income"`
}
