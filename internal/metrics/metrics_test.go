package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/metrics"
)

func TestHTTP_Observe(t *testing.T) {
	m := metrics.NewHTTP("budget")

	m.Observe(http.MethodGet, "/expenses", http.StatusOK, 15*time.Millisecond)
	m.Observe(http.MethodGet, "/expenses", http.StatusOK, 5*time.Millisecond)
	m.Observe(http.MethodPost, "/expenses", http.StatusBadRequest, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `budget_http_requests_total{code="200",method="GET",route="/expenses"} 2`)
	assert.Contains(t, body, `budget_http_requests_total{code="400",method="POST",route="/expenses"} 1`)
	assert.Contains(t, body, `budget_http_request_duration_seconds_count{method="GET",route="/expenses"} 2`)
	assert.Contains(t, body, "go_goroutines")
}
