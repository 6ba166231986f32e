// Package metrics exposes the Prometheus collectors of the group bot.
//
// Collectors are registered on a private registry so that several bots (or
// tests) can live in one process:
//
//	m := metrics.NewMetrics()
//	m.CommandHandled("ping")
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// Update outcomes.
const (
	OutcomeHandled = "handled"
	OutcomeUnknown = "unknown"
	OutcomeIgnored = "ignored"
	OutcomePanic   = "panic"
)

// Metrics holds the bot collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Commands counts handled commands.
	// Labels: command
	Commands *prometheus.CounterVec

	// UpstreamFailures counts service calls that ended in the empty or fallback result.
	// Labels: service (weather|translation|dictionary|generative)
	UpstreamFailures *prometheus.CounterVec

	// Updates counts received updates by outcome.
	// Labels: outcome (handled|unknown|ignored|panic)
	Updates *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors on a fresh registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupbot_commands_total",
			Help: "Number of handled bot commands.",
		}, []string{"command"}),
		UpstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupbot_upstream_failures_total",
			Help: "Number of failed calls to external services.",
		}, []string{"service"}),
		Updates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupbot_updates_total",
			Help: "Number of received updates by outcome.",
		}, []string{"outcome"}),
		registry: reg,
	}
}

// TrackChats exports the number of chats with state as a gauge.
func (m *Metrics) TrackChats(count func() int) {
	if m == nil {
		return
	}
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "groupbot_chats_tracked",
		Help: "Number of chats with in-memory state.",
	}, func() float64 { return float64(count()) })
}

// CommandHandled counts one dispatched command.
func (m *Metrics) CommandHandled(command string) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(command).Inc()
}

// UpstreamFailed counts one failed call to service.
func (m *Metrics) UpstreamFailed(service string) {
	if m == nil {
		return
	}
	m.UpstreamFailures.WithLabelValues(service).Inc()
}

// UpdateProcessed counts one update with its outcome.
func (m *Metrics) UpdateProcessed(outcome string) {
	if m == nil {
		return
	}
	m.Updates.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
