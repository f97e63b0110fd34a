package server

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jrsteele09/portal-gate/gatekeeper"
	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
)

const metricsNamespace = "portal_gate"

// Metrics counts gate decisions and login outcomes.
type Metrics struct {
	gateDecisions *prometheus.CounterVec
	logins        *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gate_decisions_total",
			Help:      "Requests evaluated by the gatekeeper, by final state.",
		}, []string{"state"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "logins_total",
			Help:      "Completed login callbacks, by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observeDecision(d gatekeeper.Decision) {
	m.gateDecisions.WithLabelValues(d.State.String()).Inc()
}

func (m *Metrics) observeLogin(err error) {
	m.logins.WithLabelValues(loginOutcome(err)).Inc()
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrInvalidOAuthState):
		return "invalid_state"
	case errors.Is(err, apperrors.ErrTokenExchangeFailed):
		return "exchange_failed"
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		return "email_not_verified"
	case errors.Is(err, apperrors.ErrForbiddenDomain):
		return "forbidden_domain"
	default:
		return "error"
	}
}

// MetricsHandler exposes the metrics gathered by g.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
