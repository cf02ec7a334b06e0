package regulations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Dan9191/loan-score-service/internal/engine"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML_Overrides(t *testing.T) {
	regs, err := ParseYAML([]byte(`
version: "2025-03"
min_age: 21
max_debt_to_income: 0.45
prohibited_purposes:
  - Speculative Investment
  - Gambling
`))
	require.NoError(t, err)

	assert.Equal(t, "2025-03", regs.Version)
	assert.Equal(t, 21, regs.MinAge)
	assert.True(t, regs.MaxDebtToIncome.Equal(decimal.RequireFromString("0.45")))
	assert.Equal(t, []string{"Speculative Investment", "Gambling"}, regs.ProhibitedPurposes)

	// untouched fields keep defaults
	defaults := engine.DefaultRegulations()
	assert.Equal(t, defaults.MinCreditScore, regs.MinCreditScore)
	assert.True(t, regs.MaxLoanAmount.Equal(defaults.MaxLoanAmount))
	assert.True(t, regs.MaxInterestRate.Equal(defaults.MaxInterestRate))
}

func TestParseYAML_EmptyPurposeList(t *testing.T) {
	regs, err := ParseYAML([]byte("prohibited_purposes: []\n"))
	require.NoError(t, err)
	assert.Empty(t, regs.ProhibitedPurposes)
}

func TestParseYAML_RejectsNegative(t *testing.T) {
	_, err := ParseYAML([]byte("max_interest_rate: -0.01\n"))
	assert.ErrorIs(t, err, engine.ErrInvalidRegulations)
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte("min_age: [not, a, number]\n"))
	assert.Error(t, err)
}

func TestParseYAML_NonFinite(t *testing.T) {
	for _, doc := range []string{
		"max_debt_to_income: .nan\n",
		"max_loan_amount: .inf\n",
		"max_interest_rate: -.inf\n",
	} {
		t.Run(doc, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = ParseYAML([]byte(doc)) })
			assert.ErrorIs(t, err, engine.ErrInvalidRegulations)
			assert.ErrorContains(t, err, "not a finite number")
		})
	}
}

func TestParseXML_Overrides(t *testing.T) {
	regs, err := ParseXML([]byte(`<?xml version="1.0" encoding="utf-8"?>
<regulations version="circular-42">
  <minCreditScore>680</minCreditScore>
  <maxLoanAmount>3000000</maxLoanAmount>
  <maxInterestRate>0.045</maxInterestRate>
  <prohibitedPurposes>
    <purpose>Speculative Investment</purpose>
    <purpose> Crypto Trading </purpose>
  </prohibitedPurposes>
</regulations>`))
	require.NoError(t, err)

	assert.Equal(t, "circular-42", regs.Version)
	assert.Equal(t, 680, regs.MinCreditScore)
	assert.Equal(t, engine.DefaultMinAge, regs.MinAge)
	assert.True(t, regs.MaxLoanAmount.Equal(decimal.NewFromInt(3_000_000)))
	assert.True(t, regs.MaxInterestRate.Equal(decimal.RequireFromString("0.045")))
	assert.Equal(t, []string{"Speculative Investment", "Crypto Trading"}, regs.ProhibitedPurposes)
}

func TestParseXML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"wrong root", `<rules><minAge>18</minAge></rules>`},
		{"bad integer", `<regulations><minAge>eighteen</minAge></regulations>`},
		{"bad decimal", `<regulations><maxDebtToIncome>a third</maxDebtToIncome></regulations>`},
		{"negative", `<regulations><maxDebtToIncome>-1</maxDebtToIncome></regulations>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXML([]byte(tt.doc))
			assert.ErrorIs(t, err, engine.ErrInvalidRegulations)
		})
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("min_age: 20\n"), 0o600))
	regs, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 20, regs.MinAge)

	xmlPath := filepath.Join(dir, "rules.xml")
	require.NoError(t, os.WriteFile(xmlPath, []byte("<regulations><minAge>19</minAge></regulations>"), 0o600))
	regs, err = Load(xmlPath)
	require.NoError(t, err)
	assert.Equal(t, 19, regs.MinAge)

	txtPath := filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("min_age=19"), 0o600))
	_, err = Load(txtPath)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
