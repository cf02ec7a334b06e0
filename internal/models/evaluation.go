package models

// EvaluationResult is returned for applications that pass compliance and
// qualify with at least one bank
type EvaluationResult struct {
	LoanScore     float64  `json:"loan_score"`
	EligibleBanks []string `json:"eligible_banks"`
}
