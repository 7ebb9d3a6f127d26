// Package metrics exposes Prometheus metrics for trigger invocations.
//
// Methods handle a nil receiver, so a nil *Metrics disables instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks trigger outcomes and directory latency.
type Metrics struct {
	// Outcomes counts trigger invocations.
	// Labels: trigger=[pre_signup, post_authentication], action=[none, linked_existing,
	// provisioned, email_verified, failed]
	Outcomes *prometheus.CounterVec

	// Duration tracks trigger processing time.
	// Labels: trigger=[pre_signup, post_authentication]
	Duration *prometheus.HistogramVec
}

// Trigger label values.
const (
	TriggerPreSignUp          = "pre_signup"
	TriggerPostAuthentication = "post_authentication"
)

// ActionFailed labels invocations that returned an error.
const ActionFailed = "failed"

// New creates and registers the metrics. A nil registerer means prometheus.DefaultRegisterer.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "idlink_trigger_outcomes_total",
				Help: "Trigger invocations by trigger and resulting action",
			},
			[]string{"trigger", "action"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "idlink_trigger_duration_seconds",
				Help:    "Trigger processing time including directory calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"trigger"},
		),
	}

	registerer.MustRegister(m.Outcomes, m.Duration)

	return m
}

// Observe records a finished invocation.
func (m *Metrics) Observe(trigger, action string, started time.Time) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(trigger, action).Inc()
	m.Duration.WithLabelValues(trigger).Observe(time.Since(started).Seconds())
}
