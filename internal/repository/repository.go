package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/loan-score-service/internal/models"
)

// Repository provides read access to reference data stored in Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListBankPolicies returns the bank catalog in display order. It is read
// once at startup; the table is never written by this service.
func (r *Repository) ListBankPolicies(ctx context.Context) ([]models.BankPolicy, error) {
	query := `
		SELECT name, url, min_credit_score, max_debt_to_income
		FROM bank.bank_policies
		ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank policies: %w", err)
	}
	defer rows.Close()

	var policies []models.BankPolicy
	for rows.Next() {
		var p models.BankPolicy
		if err := rows.Scan(&p.Name, &p.URL, &p.MinCreditScore, &p.MaxDebtToIncome); err != nil {
			return nil, fmt.Errorf("failed to scan bank policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bank policies: %w", err)
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("bank.bank_policies is empty")
	}
	return policies, nil
}
