// Package metrics exposes Prometheus instruments for bet intake.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chuta"

// Message outcomes.
const (
	OutcomeBets      = "bets"
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomeClosed    = "closed"
	OutcomeError     = "error"
)

// Bet classifications.
const (
	BetAccepted      = "accepted"
	BetAlreadyExists = "already_exists"
	BetRejected      = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry

	messages   *prometheus.CounterVec
	bets       *prometheus.CounterVec
	rejections *prometheus.CounterVec
	confidence *prometheus.CounterVec
	latency    prometheus.Histogram
	openGauge  prometheus.Gauge
}

// New creates the instruments on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Inbound chat messages by intake outcome.",
		}, []string{"outcome"}),
		bets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bets_total",
			Help:      "Candidate bets by reconciliation result.",
		}, []string{"result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bet_rejections_total",
			Help:      "Rejected candidate bets by reason.",
		}, []string{"reason"}),
		confidence: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parsed_bets_total",
			Help:      "Parsed candidate bets by confidence tier.",
		}, []string{"confidence"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "intake_duration_seconds",
			Help:      "Time spent handling one message.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		openGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_matches",
			Help:      "Matches accepting bets at the last window resolution.",
		}),
	}
	reg.MustRegister(m.messages, m.bets, m.rejections, m.confidence, m.latency, m.openGauge)
	return m
}

func (m *Metrics) Message(outcome string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Bets(result string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.bets.WithLabelValues(result).Add(float64(n))
}

func (m *Metrics) Rejection(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) Parsed(confidence string) {
	if m == nil {
		return
	}
	m.confidence.WithLabelValues(confidence).Inc()
}

func (m *Metrics) ObserveIntake(d time.Duration) {
	if m == nil {
		return
	}
	m.latency.Observe(d.Seconds())
}

func (m *Metrics) OpenMatches(n int) {
	if m == nil {
		return
	}
	m.openGauge.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
