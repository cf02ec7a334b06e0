package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Dan9191/loan-score-service/internal/config"
	"github.com/Dan9191/loan-score-service/internal/engine"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendDecision notifies an applicant of the outcome of their loan evaluation
func (s *Sender) SendDecision(to string, decision engine.Decision, evaluatedAt time.Time) error {
	e := buildDecisionEmail(s.cfg.SenderEmail, to, decision, evaluatedAt)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send decision email: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.WithField("outcome", decision.Outcome).Info("Decision email sent")
	return nil
}

func buildDecisionEmail(from, to string, decision engine.Decision, evaluatedAt time.Time) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}

	var body strings.Builder
	body.WriteString("Dear applicant,\n\n")
	switch decision.Outcome {
	case engine.OutcomeApproved:
		e.Subject = "Your Loan Application Was Pre-Approved"
		fmt.Fprintf(&body,
			"Your loan application evaluated on %s received a score of %.2f.\n"+
				"The following banks accept applications matching your profile:\n",
			evaluatedAt.Format("2006-01-02"), decision.Result.LoanScore)
		for _, bank := range decision.Result.EligibleBanks {
			fmt.Fprintf(&body, "  - %s\n", bank)
		}
	case engine.OutcomeNonCompliant:
		e.Subject = "Your Loan Application Could Not Be Accepted"
		fmt.Fprintf(&body,
			"Your loan application evaluated on %s does not comply with SAMA regulations (%s).\n",
			evaluatedAt.Format("2006-01-02"), strings.ReplaceAll(string(decision.Violation), "_", " "))
	default:
		e.Subject = "Your Loan Application Could Not Be Matched"
		fmt.Fprintf(&body,
			"Your loan application evaluated on %s does not meet the requirements of any partner bank.\n",
			evaluatedAt.Format("2006-01-02"))
	}
	body.WriteString("\nBest regards,\nLoan Score Service")
	e.Text = []byte(body.String())
	return e
}
