// Package regulations loads regulatory threshold overrides from YAML or XML
// documents. Fields absent from a document keep the SAMA defaults.
package regulations

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Dan9191/loan-score-service/internal/engine"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor XML
var ErrUnsupportedFormat = errors.New("unsupported regulations format")

type document struct {
	Version            string    `yaml:"version"`
	MinAge             *int      `yaml:"min_age"`
	MaxDebtToIncome    *float64  `yaml:"max_debt_to_income"`
	MinCreditScore     *int      `yaml:"min_credit_score"`
	ProhibitedPurposes *[]string `yaml:"prohibited_purposes"`
	MaxLoanAmount      *float64  `yaml:"max_loan_amount"`
	MaxInterestRate    *float64  `yaml:"max_interest_rate"`
}

// Load reads path and applies its overrides to the default regulations.
// The format is chosen by extension: .yaml/.yml or .xml.
func Load(path string) (engine.Regulations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Regulations{}, fmt.Errorf("failed to read regulations file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".xml":
		return ParseXML(data)
	default:
		return engine.Regulations{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseYAML applies a YAML document to the default regulations
func ParseYAML(data []byte) (engine.Regulations, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return engine.Regulations{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	regs := engine.DefaultRegulations()
	regs.Version = doc.Version
	if doc.MinAge != nil {
		regs.MinAge = *doc.MinAge
	}
	if doc.MaxDebtToIncome != nil {
		v, err := finiteDecimal("max_debt_to_income", *doc.MaxDebtToIncome)
		if err != nil {
			return engine.Regulations{}, err
		}
		regs.MaxDebtToIncome = v
	}
	if doc.MinCreditScore != nil {
		regs.MinCreditScore = *doc.MinCreditScore
	}
	if doc.ProhibitedPurposes != nil {
		regs.ProhibitedPurposes = *doc.ProhibitedPurposes
	}
	if doc.MaxLoanAmount != nil {
		v, err := finiteDecimal("max_loan_amount", *doc.MaxLoanAmount)
		if err != nil {
			return engine.Regulations{}, err
		}
		regs.MaxLoanAmount = v
	}
	if doc.MaxInterestRate != nil {
		v, err := finiteDecimal("max_interest_rate", *doc.MaxInterestRate)
		if err != nil {
			return engine.Regulations{}, err
		}
		regs.MaxInterestRate = v
	}

	if err := regs.Validate(); err != nil {
		return engine.Regulations{}, err
	}
	return regs, nil
}

func finiteDecimal(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %s: not a finite number", engine.ErrInvalidRegulations, field)
	}
	return decimal.NewFromFloat(f), nil
}

// ParseXML applies an XML document of the form
//
//	<regulations version="...">
//	  <minAge>18</minAge>
//	  <maxDebtToIncome>0.33</maxDebtToIncome>
//	  <minCreditScore>650</minCreditScore>
//	  <prohibitedPurposes><purpose>Speculative Investment</purpose></prohibitedPurposes>
//	  <maxLoanAmount>5000000</maxLoanAmount>
//	  <maxInterestRate>0.05</maxInterestRate>
//	</regulations>
//
// to the default regulations.
func ParseXML(data []byte) (engine.Regulations, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return engine.Regulations{}, fmt.Errorf("failed to parse XML: %v", err)
	}

	root := doc.SelectElement("regulations")
	if root == nil {
		return engine.Regulations{}, fmt.Errorf("%w: missing <regulations> root", engine.ErrInvalidRegulations)
	}

	regs := engine.DefaultRegulations()
	regs.Version = root.SelectAttrValue("version", "")

	var err error
	if regs.MinAge, err = intElement(root, "minAge", regs.MinAge); err != nil {
		return engine.Regulations{}, err
	}
	if regs.MaxDebtToIncome, err = decimalElement(root, "maxDebtToIncome", regs.MaxDebtToIncome); err != nil {
		return engine.Regulations{}, err
	}
	if regs.MinCreditScore, err = intElement(root, "minCreditScore", regs.MinCreditScore); err != nil {
		return engine.Regulations{}, err
	}
	if regs.MaxLoanAmount, err = decimalElement(root, "maxLoanAmount", regs.MaxLoanAmount); err != nil {
		return engine.Regulations{}, err
	}
	if regs.MaxInterestRate, err = decimalElement(root, "maxInterestRate", regs.MaxInterestRate); err != nil {
		return engine.Regulations{}, err
	}

	if list := root.SelectElement("prohibitedPurposes"); list != nil {
		purposes := []string{}
		for _, p := range list.SelectElements("purpose") {
			if text := strings.TrimSpace(p.Text()); text != "" {
				purposes = append(purposes, text)
			}
		}
		regs.ProhibitedPurposes = purposes
	}

	if err := regs.Validate(); err != nil {
		return engine.Regulations{}, err
	}
	return regs, nil
}

func intElement(root *etree.Element, tag string, fallback int) (int, error) {
	el := root.SelectElement(tag)
	if el == nil {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(el.Text()))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", engine.ErrInvalidRegulations, tag, err)
	}
	return v, nil
}

func decimalElement(root *etree.Element, tag string, fallback decimal.Decimal) (decimal.Decimal, error) {
	el := root.SelectElement(tag)
	if el == nil {
		return fallback, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(el.Text()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", engine.ErrInvalidRegulations, tag, err)
	}
	return v, nil
}
