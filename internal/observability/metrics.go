package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счётчики и датчики узла Public Pulse
type Metrics struct {
	QueueDepth        prometheus.Gauge
	SyncCycles        *prometheus.CounterVec
	WriteAttempts     *prometheus.CounterVec
	ReconcileDuration prometheus.Histogram
	ActivePredictions prometheus.Gauge
	ActiveAlerts      prometheus.Gauge
}

// NewMetrics создаёт метрики и регистрирует их в переданном реестре
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pulse",
			Name:      "sync_queue_depth",
			Help:      "Number of pending writes awaiting server confirmation",
		}),
		SyncCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulse",
			Name:      "sync_cycles_total",
			Help:      "Background sync cycles by outcome",
		}, []string{"outcome"}),
		WriteAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulse",
			Name:      "sync_write_attempts_total",
			Help:      "Pending write replay attempts by outcome",
		}, []string{"kind", "outcome"}),
		ReconcileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pulse",
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent merging the server snapshot into the local view",
			Buckets:   prometheus.DefBuckets,
		}),
		ActivePredictions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pulse",
			Name:      "active_predictions",
			Help:      "Fresh predictions currently exposed to clients",
		}),
		ActiveAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pulse",
			Name:      "active_alerts",
			Help:      "Alerts currently active (not dismissed, not superseded)",
		}),
	}
	reg.MustRegister(
		m.QueueDepth,
		m.SyncCycles,
		m.WriteAttempts,
		m.ReconcileDuration,
		m.ActivePredictions,
		m.ActiveAlerts,
	)
	return m
}

// NewMetricsForTesting создаёт метрики с изолированным реестром
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
