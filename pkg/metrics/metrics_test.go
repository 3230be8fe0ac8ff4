package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLoanOperation(t *testing.T) {
	m := NewMetrics()

	m.RecordLoanOperation("borrow", OutcomeSuccess)
	m.RecordLoanOperation("borrow", OutcomeSuccess)
	m.RecordLoanOperation("borrow", OutcomeConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loanOperationsTotal.WithLabelValues("borrow", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loanOperationsTotal.WithLabelValues("borrow", OutcomeConflict)))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/books", "200", 15*time.Millisecond)
	m.RecordBookCreated()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "library_http_requests_total")
	assert.Contains(t, w.Body.String(), "library_books_created_total 1")
}
