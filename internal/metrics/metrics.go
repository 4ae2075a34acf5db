// Package metrics defines the Prometheus instruments exported by the server
// on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chat_vault"

// Outcome label values shared by the counters below.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics groups every instrument. Construct it once with [New] and share it.
type Metrics struct {
	registrations      *prometheus.CounterVec
	logins             *prometheus.CounterVec
	tokenVerifications *prometheus.CounterVec
	decryptFallbacks   *prometheus.CounterVec
	passwordRehashes   prometheus.Counter
	rateLimited        *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		tokenVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_verifications_total",
			Help:      "Bearer token verifications by outcome.",
		}, []string{"outcome"}),
		decryptFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safe_view_decrypt_fallbacks_total",
			Help:      "Fields that could not be decrypted for a safe view and were replaced by a placeholder.",
		}, []string{"field"}),
		passwordRehashes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_rehashes_total",
			Help:      "Password hashes upgraded to the configured cost on login.",
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the auth rate limiter.",
		}, []string{"route"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		m.registrations,
		m.logins,
		m.tokenVerifications,
		m.decryptFallbacks,
		m.passwordRehashes,
		m.rateLimited,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// NewNop returns Metrics registered with a private registry. Useful in tests
// and tools that do not expose /metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// The recording methods are no-ops on a nil *Metrics.
func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TokenVerification(outcome string) {
	if m == nil {
		return
	}
	m.tokenVerifications.WithLabelValues(outcome).Inc()
}

// DecryptFallback counts a safe view placeholder for field ("email" or
// "display_name").
func (m *Metrics) DecryptFallback(field string) {
	if m == nil {
		return
	}
	m.decryptFallbacks.WithLabelValues(field).Inc()
}

func (m *Metrics) PasswordRehash() {
	if m == nil {
		return
	}
	m.passwordRehashes.Inc()
}

func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

// HTTPRequest records one served request.
func (m *Metrics) HTTPRequest(route, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
}

func statusLabel(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status)
}
