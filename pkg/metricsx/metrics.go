// Package metricsx holds the Prometheus metrics exported on /metrics.
//
// A nil *Metrics is valid and records nothing, so services can be built in
// tests without a registry.
package metricsx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultDenied  = "denied"
	ResultLimited = "limited"
)

// Token kind label values.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LoginsTotal         *prometheus.CounterVec
	OTPValidationsTotal *prometheus.CounterVec
	TokensIssuedTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the metrics and registers them, plus the Go and process
// collectors, on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminhub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adminhub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminhub_auth_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		OTPValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminhub_auth_otp_validations_total",
				Help: "TOTP code checks (validateOtp and finishMfaSetup) by result",
			},
			[]string{"result"},
		),
		TokensIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminhub_auth_tokens_issued_total",
				Help: "Access and refresh tokens issued",
			},
			[]string{"kind"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginsTotal,
		m.OTPValidationsTotal,
		m.TokensIssuedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveOTP(result string) {
	if m == nil {
		return
	}
	m.OTPValidationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveTokenIssued(kind string) {
	if m == nil {
		return
	}
	m.TokensIssuedTotal.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument wraps h, labelling samples with route (the mux pattern) rather
// than the raw path so /v1/users/{id} stays one series.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		h.ServeHTTP(rw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
