package metricsx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInstrument(t *testing.T) {
	m := New(prometheus.NewRegistry())

	h := m.Instrument("GET /v1/users/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	for _, id := range []string{"a", "b"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/users/"+id, nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /v1/users/{id}", "400")))
	require.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestAuthCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLogin(ResultSuccess)
	m.ObserveLogin(ResultFailure)
	m.ObserveLogin(ResultFailure)
	m.ObserveOTP(ResultLimited)
	m.ObserveTokenIssued(TokenAccess)

	require.Equal(t, 2.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(ResultFailure)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.OTPValidationsTotal.WithLabelValues(ResultLimited)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.TokensIssuedTotal.WithLabelValues(TokenAccess)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveLogin(ResultSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), `adminhub_auth_logins_total{result="success"} 1`))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveLogin(ResultSuccess)
	m.ObserveOTP(ResultFailure)
	m.ObserveTokenIssued(TokenRefresh)

	called := false
	h := m.Instrument("x", http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)
}
