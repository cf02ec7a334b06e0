package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.Evaluations.WithLabelValues("approved").Inc()
	m.Violations.WithLabelValues("min_age").Inc()
	m.Scores.Observe(72.5)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `loan_evaluations_total{outcome="approved"} 1`)
	assert.Contains(t, body, `loan_compliance_violations_total{rule="min_age"} 1`)
	assert.Contains(t, body, "loan_score_count 1")
}

func TestNew_IndependentRegistries(t *testing.T) {
	// each instance owns its registry, so constructing twice must not panic
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
