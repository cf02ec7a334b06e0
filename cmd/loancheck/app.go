package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Dan9191/loan-score-service/internal/engine"
	"github.com/Dan9191/loan-score-service/internal/models"
	"github.com/Dan9191/loan-score-service/internal/regulations"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	fileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the loan application JSON, or - for stdin",
		Required: true,
	}

	regulationsFlag = &cli.StringFlag{
		Name:    "regulations",
		Usage:   "Path to a YAML or XML regulations override (optional)",
		EnvVars: []string{"REGULATIONS_FILE"},
	}
)

type report struct {
	Outcome       engine.Outcome `json:"outcome" yaml:"outcome"`
	Rule          engine.Rule    `json:"rule,omitempty" yaml:"rule,omitempty"`
	LoanScore     *float64       `json:"loan_score,omitempty" yaml:"loan_score,omitempty"`
	EligibleBanks []string       `json:"eligible_banks,omitempty" yaml:"eligible_banks,omitempty"`
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "loancheck",
		Version:         fmt.Sprintf("%s (%s)", version, commit),
		Usage:           "Evaluate loan applications against SAMA regulations and bank policies",
		HideHelpCommand: true,
		Flags:           []cli.Flag{debugFlag},
		Before: func(c *cli.Context) error {
			if c.Bool(debugFlag.Name) {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "evaluate",
				Usage:  "Score a loan application and list the eligible banks",
				Flags:  []cli.Flag{fileFlag, regulationsFlag, formatFlag},
				Action: evaluateCmd,
			},
			{
				Name:   "banks",
				Usage:  "List the bank catalog",
				Flags:  []cli.Flag{formatFlag},
				Action: banksCmd,
			},
		},
	}
}

func evaluateCmd(c *cli.Context) error {
	app, err := readApplication(c.String(fileFlag.Name), c.App.Reader)
	if err != nil {
		return err
	}

	regs := engine.DefaultRegulations()
	if path := c.String(regulationsFlag.Name); path != "" {
		if regs, err = regulations.Load(path); err != nil {
			return err
		}
		log.Debugf("using regulations version %q from %s", regs.Version, path)
	}

	evaluator, err := engine.NewEvaluator(regs, engine.DefaultCatalog(), engine.DefaultScoreWeights())
	if err != nil {
		return err
	}
	decision, err := evaluator.Evaluate(app)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	out := report{Outcome: decision.Outcome, Rule: decision.Violation}
	if decision.Outcome == engine.OutcomeApproved {
		score := decision.Result.LoanScore
		out.LoanScore = &score
		out.EligibleBanks = decision.Result.EligibleBanks
	}
	return printFormatted(c.App.Writer, c.String(formatFlag.Name), out)
}

func banksCmd(c *cli.Context) error {
	return printFormatted(c.App.Writer, c.String(formatFlag.Name), engine.DefaultCatalog().Banks())
}

func readApplication(path string, stdin io.Reader) (models.LoanApplication, error) {
	var app models.LoanApplication

	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return app, fmt.Errorf("failed to open application: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&app); err != nil {
		return app, fmt.Errorf("failed to parse application: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return app, errors.New("failed to parse application: trailing data after JSON object")
	}
	if err := validator.New().Struct(&app); err != nil {
		return app, fmt.Errorf("invalid application: %w", err)
	}
	return app, nil
}

func printFormatted(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
