package minikanren

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts search activity. One Metrics value may be shared by many
// sessions, including sessions running on different goroutines. A nil
// *Metrics records nothing.
type Metrics struct {
	Steps        prometheus.Counter
	Unifications *prometheus.CounterVec
	Suspensions  prometheus.Counter
	Solutions    prometheus.Counter
}

// NewMetrics creates the search counters and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minotaur",
			Subsystem: "search",
			Name:      "steps_total",
			Help:      "Number of steps taken by search cursors.",
		}),
		Unifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minotaur",
			Subsystem: "search",
			Name:      "unifications_total",
			Help:      "Number of unification attempts, by outcome.",
		}, []string{"outcome"}),
		Suspensions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minotaur",
			Subsystem: "search",
			Name:      "suspensions_forced_total",
			Help:      "Number of suspended goals forced by the search.",
		}),
		Solutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minotaur",
			Subsystem: "search",
			Name:      "solutions_total",
			Help:      "Number of solutions produced, before deduplication.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Unifications, m.Suspensions, m.Solutions)
	}
	return m
}

func (m *Metrics) stepTaken() {
	if m != nil {
		m.Steps.Inc()
	}
}

func (m *Metrics) unified(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.Unifications.WithLabelValues("success").Inc()
	} else {
		m.Unifications.WithLabelValues("failure").Inc()
	}
}

func (m *Metrics) suspensionForced() {
	if m != nil {
		m.Suspensions.Inc()
	}
}

func (m *Metrics) solutionFound() {
	if m != nil {
		m.Solutions.Inc()
	}
}
