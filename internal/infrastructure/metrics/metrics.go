package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry. A nil *Collector is valid and records nothing.
type Collector struct {
	registry              *prometheus.Registry
	applicationsSubmitted *prometheus.CounterVec
	transitions           *prometheus.CounterVec
	simulations           *prometheus.CounterVec
	payments              prometheus.Counter
	documents             *prometheus.CounterVec
	eventPublishFailures  *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	f := promauto.With(registry)

	return &Collector{
		registry: registry,
		applicationsSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agrocredito_applications_submitted_total",
			Help: "Credit applications accepted, by project type",
		}, []string{"project_type"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agrocredito_application_transitions_total",
			Help: "Application status transitions",
		}, []string{"from", "to"}),
		simulations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agrocredito_simulations_total",
			Help: "Loan simulations served, by project type",
		}, []string{"project_type"}),
		payments: f.NewCounter(prometheus.CounterOpts{
			Name: "agrocredito_payments_recorded_total",
			Help: "Repayments recorded against accounts",
		}),
		documents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agrocredito_documents_recorded_total",
			Help: "Document versions recorded, by type",
		}, []string{"type"}),
		eventPublishFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agrocredito_event_publish_failures_total",
			Help: "Domain events that could not be published after commit",
		}, []string{"type"}),
	}
}

func (m *Collector) ApplicationSubmitted(projectType string) {
	if m == nil {
		return
	}
	m.applicationsSubmitted.WithLabelValues(projectType).Inc()
}

func (m *Collector) Transition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *Collector) Simulation(projectType string) {
	if m == nil {
		return
	}
	m.simulations.WithLabelValues(projectType).Inc()
}

func (m *Collector) PaymentRecorded() {
	if m == nil {
		return
	}
	m.payments.Inc()
}

func (m *Collector) DocumentRecorded(docType string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(docType).Inc()
}

func (m *Collector) EventPublishFailed(eventType string) {
	if m == nil {
		return
	}
	m.eventPublishFailures.WithLabelValues(eventType).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
