package authgate

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the engine's Prometheus counter set, registered on a private
// registry so embedding applications keep control of their default one.
// A nil *Metrics (metrics disabled) is safe to use.
type Metrics struct {
	registry *prometheus.Registry

	signupSuccess    prometheus.Counter
	signupFailure    prometheus.Counter
	loginSuccess     prometheus.Counter
	loginFailure     prometheus.Counter
	loginRateLimited prometheus.Counter
	refreshSuccess   prometheus.Counter
	refreshFailure   prometheus.Counter
	logoutTotal      prometheus.Counter
	tokenInvalid     prometheus.Counter
	sessionExpired   prometheus.Counter
}

// NewMetrics creates the counter set, or nil when disabled.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}

	registry := prometheus.NewRegistry()
	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		registry.MustRegister(c)
		return c
	}

	return &Metrics{
		registry:         registry,
		signupSuccess:    counter("authgate_signup_success_total", "Accounts created."),
		signupFailure:    counter("authgate_signup_failure_total", "Rejected signup attempts."),
		loginSuccess:     counter("authgate_login_success_total", "Successful logins."),
		loginFailure:     counter("authgate_login_failure_total", "Failed logins (unknown email or wrong password)."),
		loginRateLimited: counter("authgate_login_rate_limited_total", "Logins rejected by the throttle."),
		refreshSuccess:   counter("authgate_refresh_success_total", "Access tokens minted via refresh."),
		refreshFailure:   counter("authgate_refresh_failure_total", "Failed refresh attempts."),
		logoutTotal:      counter("authgate_logout_total", "Logout operations."),
		tokenInvalid:     counter("authgate_token_invalid_total", "Access tokens rejected by the verifier."),
		sessionExpired:   counter("authgate_session_expired_total", "Valid tokens rejected for lack of a live session."),
	}
}

// Handler serves the counter set in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// The inc* helpers are nil-safe so disabled metrics cost one branch.

func (m *Metrics) incSignupSuccess() {
	if m != nil {
		m.signupSuccess.Inc()
	}
}

func (m *Metrics) incSignupFailure() {
	if m != nil {
		m.signupFailure.Inc()
	}
}

func (m *Metrics) incLoginSuccess() {
	if m != nil {
		m.loginSuccess.Inc()
	}
}

func (m *Metrics) incLoginFailure() {
	if m != nil {
		m.loginFailure.Inc()
	}
}

func (m *Metrics) incLoginRateLimited() {
	if m != nil {
		m.loginRateLimited.Inc()
	}
}

func (m *Metrics) incRefreshSuccess() {
	if m != nil {
		m.refreshSuccess.Inc()
	}
}

func (m *Metrics) incRefreshFailure() {
	if m != nil {
		m.refreshFailure.Inc()
	}
}

func (m *Metrics) incLogout() {
	if m != nil {
		m.logoutTotal.Inc()
	}
}

func (m *Metrics) incTokenInvalid() {
	if m != nil {
		m.tokenInvalid.Inc()
	}
}

func (m *Metrics) incSessionExpired() {
	if m != nil {
		m.sessionExpired.Inc()
	}
}
