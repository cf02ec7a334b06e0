package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Dan9191/loan-score-service/internal/engine"
	"github.com/Dan9191/loan-score-service/internal/middleware"
	"github.com/Dan9191/loan-score-service/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// Response messages
const (
	msgNonCompliant   = "Loan application does not comply with SAMA regulations"
	msgNoEligibleBank = "User does not meet the requirements of any bank"
	msgInternal       = "internal server error"
)

// Evaluator is the part of the service the handler depends on
type Evaluator interface {
	Evaluate(ctx context.Context, app models.LoanApplication) (engine.Decision, error)
	Banks() []models.BankPolicy
	Regulations() engine.Regulations
}

type Handler struct {
	svc      Evaluator
	log      *logrus.Logger
	validate *validator.Validate
}

func NewHandler(svc Evaluator, log *logrus.Logger) *Handler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{svc: svc, log: log, validate: validate}
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error  string   `json:"error"`
	Rule   string   `json:"rule,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// RegulationsResponse renders every threshold as a JSON number
type RegulationsResponse struct {
	Version            string   `json:"version,omitempty"`
	MinAge             int      `json:"min_age"`
	MaxDebtToIncome    float64  `json:"max_debt_to_income"`
	MinCreditScore     int      `json:"min_credit_score"`
	ProhibitedPurposes []string `json:"prohibited_purposes"`
	MaxLoanAmount      float64  `json:"max_loan_amount"`
	MaxInterestRate    float64  `json:"max_interest_rate"`
}

// Register attaches the loan score routes to r
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/loan-score", h.LoanScore).Methods(http.MethodPost)
	r.HandleFunc("/banks", h.Banks).Methods(http.MethodGet)
	r.HandleFunc("/regulations", h.Regulations).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
}

// LoanScore evaluates a loan application
func (h *Handler) LoanScore(w http.ResponseWriter, r *http.Request) {
	var app models.LoanApplication
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&app); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "request body must contain a single JSON object"})
		return
	}
	if err := h.validate.Struct(&app); err != nil {
		writeJSON(w, http.StatusBadRequest, validationResponse(err))
		return
	}

	decision, err := h.svc.Evaluate(r.Context(), app)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.log.WithField("request_id", middleware.RequestIDFromContext(r.Context())).
			Errorf("Error in loan score prediction: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
		return
	}

	switch decision.Outcome {
	case engine.OutcomeApproved:
		writeJSON(w, http.StatusOK, decision.Result)
	case engine.OutcomeNonCompliant:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgNonCompliant, Rule: string(decision.Violation)})
	case engine.OutcomeNoEligibleBank:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgNoEligibleBank})
	default:
		h.log.Errorf("Unknown evaluation outcome %q", decision.Outcome)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
	}
}

// Banks lists the bank catalog
func (h *Handler) Banks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Banks())
}

// Regulations lists the regulatory thresholds in force
func (h *Handler) Regulations(w http.ResponseWriter, r *http.Request) {
	regs := h.svc.Regulations()
	writeJSON(w, http.StatusOK, RegulationsResponse{
		Version:            regs.Version,
		MinAge:             regs.MinAge,
		MaxDebtToIncome:    regs.MaxDebtToIncome.InexactFloat64(),
		MinCreditScore:     regs.MinCreditScore,
		ProhibitedPurposes: regs.ProhibitedPurposes,
		MaxLoanAmount:      regs.MaxLoanAmount.InexactFloat64(),
		MaxInterestRate:    regs.MaxInterestRate.InexactFloat64(),
	})
}

// Health is the liveness probe
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validationResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: "invalid request body"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			// drop the root type name: LoanApplication.user_info.income -> user_info.income
			ns := fe.Namespace()
			if i := strings.IndexByte(ns, '.'); i >= 0 {
				ns = ns[i+1:]
			}
			resp.Fields = append(resp.Fields, ns)
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
