package service

import (
	"context"
	"sync"
	"time"

	"github.com/Dan9191/loan-score-service/internal/engine"
	"github.com/Dan9191/loan-score-service/internal/metrics"
	"github.com/Dan9191/loan-score-service/internal/middleware"
	"github.com/Dan9191/loan-score-service/internal/models"
	"github.com/Dan9191/loan-score-service/internal/utils"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a decision to the applicant
type Notifier interface {
	SendDecision(to string, decision engine.Decision, evaluatedAt time.Time) error
}

// Service handles business logic around the evaluation engine
type Service struct {
	evaluator *engine.Evaluator
	catalog   *engine.Catalog
	log       *logrus.Logger
	metrics   *metrics.Metrics
	pseudo    *utils.Pseudonymizer
	notifier  Notifier

	wg sync.WaitGroup
}

// NewService initializes a new service. notifier may be nil.
func NewService(evaluator *engine.Evaluator, catalog *engine.Catalog, log *logrus.Logger, m *metrics.Metrics, pseudo *utils.Pseudonymizer, notifier Notifier) *Service {
	return &Service{
		evaluator: evaluator,
		catalog:   catalog,
		log:       log,
		metrics:   m,
		pseudo:    pseudo,
		notifier:  notifier,
	}
}

// Evaluate decides a loan application, records the outcome and, when
// requested, notifies the applicant
func (s *Service) Evaluate(ctx context.Context, app models.LoanApplication) (engine.Decision, error) {
	fields := logrus.Fields{
		"request_id":    middleware.RequestIDFromContext(ctx),
		"applicant_ref": s.pseudo.Reference(app.UserInfo.NationalID),
	}

	decision, err := s.evaluator.Evaluate(app)
	if err != nil {
		s.log.WithFields(fields).Warnf("Loan evaluation failed: %v", err)
		return engine.Decision{}, err
	}

	fields["outcome"] = decision.Outcome
	s.metrics.Evaluations.WithLabelValues(string(decision.Outcome)).Inc()
	switch decision.Outcome {
	case engine.OutcomeApproved:
		s.metrics.Scores.Observe(decision.Result.LoanScore)
		fields["loan_score"] = decision.Result.LoanScore
		fields["eligible_banks"] = len(decision.Result.EligibleBanks)
	case engine.OutcomeNonCompliant:
		s.metrics.Violations.WithLabelValues(string(decision.Violation)).Inc()
		fields["rule"] = decision.Violation
	}
	s.log.WithFields(fields).Info("Loan application evaluated")

	if app.NotifyEmail != "" && s.notifier != nil {
		s.notify(app.NotifyEmail, decision, fields)
	}
	return decision, nil
}

func (s *Service) notify(to string, decision engine.Decision, fields logrus.Fields) {
	evaluatedAt := time.Now()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.notifier.SendDecision(to, decision, evaluatedAt); err != nil {
			s.log.WithFields(fields).Warnf("Decision notification failed: %v", err)
		}
	}()
}

// Banks returns the bank catalog
func (s *Service) Banks() []models.BankPolicy {
	return s.catalog.Banks()
}

// Regulations returns the regulatory thresholds in force
func (s *Service) Regulations() engine.Regulations {
	return s.evaluator.Regulations()
}

// Close waits for pending notifications
func (s *Service) Close() {
	s.wg.Wait()
}
