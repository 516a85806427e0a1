package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "dropdown"

// metrics holds the Prometheus metrics of one Server.
type metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	toggles        prometheus.Counter
	selections     prometheus.Counter
	lookupMisses   prometheus.Counter
	renders        prometheus.Counter
	activeSessions prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Client events processed, by event and status",
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "event_duration_seconds",
			Help:      "Time from frame receipt to re-render",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"event"}),

		toggles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "toggles_total",
			Help:      "Trigger clicks that flipped the open state",
		}),

		selections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "selections_total",
			Help:      "Menu entries activated",
		}),

		lookupMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lookup_misses_total",
			Help:      "Renders whose current value matched no option",
		}),

		renders: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "renders_total",
			Help:      "Render frames sent to clients",
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Number of open WebSocket sessions",
		}),
	}
}

func (m *metrics) recordEvent(event, status string, seconds float64) {
	m.eventsTotal.WithLabelValues(event, status).Inc()
	m.eventDuration.WithLabelValues(event).Observe(seconds)
}
