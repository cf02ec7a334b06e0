package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/Dan9191/loan-score-service/internal/models"
)

// Catalog is an immutable, insertion-ordered table of bank policies.
// It is safe for concurrent readers.
type Catalog struct {
	banks  []models.BankPolicy
	byName map[string]int
}

var saudiBanks = []models.BankPolicy{
	{Name: "Saudi National Bank (SNB)", URL: "https://www.alahli.com", MinCreditScore: 700, MaxDebtToIncome: 0.35},
	{Name: "Al Rajhi Bank", URL: "https://www.alrajhibank.com.sa", MinCreditScore: 650, MaxDebtToIncome: 0.4},
	{Name: "Riyad Bank", URL: "https://www.riyadbank.com", MinCreditScore: 675, MaxDebtToIncome: 0.38},
	{Name: "Arab National Bank (ANB)", URL: "https://www.anb.com.sa", MinCreditScore: 680, MaxDebtToIncome: 0.37},
	{Name: "The Saudi Investment Bank (SAIB)", URL: "https://www.saib.com.sa", MinCreditScore: 690, MaxDebtToIncome: 0.36},
	{Name: "Alinma Bank", URL: "https://www.alinma.com", MinCreditScore: 660, MaxDebtToIncome: 0.39},
	{Name: "Banque Saudi Fransi (BSF)", URL: "https://www.alfransi.com.sa", MinCreditScore: 685, MaxDebtToIncome: 0.37},
	{Name: "Bank AlBilad", URL: "https://www.bankalbilad.com", MinCreditScore: 670, MaxDebtToIncome: 0.38},
	{Name: "Bank Aljazira", URL: "https://www.baj.com.sa", MinCreditScore: 665, MaxDebtToIncome: 0.39},
	{Name: "Gulf International Bank (GIB)", URL: "https://www.gib.com", MinCreditScore: 695, MaxDebtToIncome: 0.36},
}

var defaultCatalog = mustCatalog(saudiBanks)

// DefaultCatalog returns the built-in catalog of Saudi banks
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog validates and copies the given policies. Order is preserved.
func NewCatalog(policies []models.BankPolicy) (*Catalog, error) {
	c := &Catalog{
		banks:  make([]models.BankPolicy, 0, len(policies)),
		byName: make(map[string]int, len(policies)),
	}
	for _, p := range policies {
		if err := validatePolicy(p); err != nil {
			return nil, err
		}
		if _, exists := c.byName[p.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBank, p.Name)
		}
		c.byName[p.Name] = len(c.banks)
		c.banks = append(c.banks, p)
	}
	return c, nil
}

func mustCatalog(policies []models.BankPolicy) *Catalog {
	c, err := NewCatalog(policies)
	if err != nil {
		panic(err)
	}
	return c
}

func validatePolicy(p models.BankPolicy) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidPolicy)
	case p.MinCreditScore < 0:
		return fmt.Errorf("%w: %s: negative min credit score", ErrInvalidPolicy, p.Name)
	case p.MaxDebtToIncome < 0 || math.IsNaN(p.MaxDebtToIncome) || math.IsInf(p.MaxDebtToIncome, 0):
		return fmt.Errorf("%w: %s: invalid max debt-to-income", ErrInvalidPolicy, p.Name)
	}
	return nil
}

// Banks returns a copy of the catalog entries in insertion order
func (c *Catalog) Banks() []models.BankPolicy {
	out := make([]models.BankPolicy, len(c.banks))
	copy(out, c.banks)
	return out
}

// Lookup returns the policy registered under name
func (c *Catalog) Lookup(name string) (models.BankPolicy, bool) {
	i, ok := c.byName[name]
	if !ok {
		return models.BankPolicy{}, false
	}
	return c.banks[i], true
}

// Len returns the number of banks
func (c *Catalog) Len() int {
	return len(c.banks)
}
