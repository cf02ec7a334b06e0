package models

// LoanOption describes the terms of the loan product being requested
type LoanOption struct {
	MonthlyPayment float64 `json:"monthly_payment" validate:"gt=0"`
	InterestRate   float64 `json:"interest_rate" validate:"gte=0,lt=1"`
}

// UserInfo represents the applicant. Income and MonthlyDebt share the
// period of LoanOption.MonthlyPayment (monthly).
type UserInfo struct {
	Age         int     `json:"age" validate:"gte=0"`
	Income      float64 `json:"income" validate:"gt=0"`
	CreditScore int     `json:"credit_score" validate:"gte=0"`
	MonthlyDebt float64 `json:"monthly_debt" validate:"gte=0"`
	NationalID  string  `json:"national_id,omitempty" validate:"omitempty,numeric,len=10"`
}

// LoanRequirements represents the purpose and size of the requested loan
type LoanRequirements struct {
	Purpose string  `json:"purpose" validate:"required"`
	Amount  float64 `json:"amount" validate:"gt=0"`
}

// LoanApplication is the payload accepted by the loan score endpoint
type LoanApplication struct {
	LoanOption       LoanOption       `json:"loan_option"`
	UserInfo         UserInfo         `json:"user_info"`
	LoanRequirements LoanRequirements `json:"loan_requirements"`
	NotifyEmail      string           `json:"notify_email,omitempty" validate:"omitempty,email"`
}
