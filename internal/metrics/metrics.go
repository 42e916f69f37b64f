package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updateTotal    *prometheus.CounterVec
	updateDuration *prometheus.HistogramVec
	secretsCached  *prometheus.GaugeVec
	lookupTotal    *prometheus.CounterVec

	// Registration guard
	metricsOnce sync.Once
)

// Init registers all Prometheus metrics. Safe to call more than once;
// registration happens on the first call only.
func Init() {
	metricsOnce.Do(func() {
		updateTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extsecrets_update_total",
				Help: "Total number of secret refresh cycles",
			},
			[]string{"store", "status"},
		)

		updateDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "extsecrets_update_duration_seconds",
				Help:    "Duration of secret refresh cycles in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"store"},
		)

		secretsCached = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "extsecrets_secrets_cached",
				Help: "Number of secrets in the published snapshot",
			},
			[]string{"store"},
		)

		lookupTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extsecrets_lookup_total",
				Help: "Total number of cache lookups",
			},
			[]string{"store", "result"},
		)
	})
}

// RecordUpdate records the outcome of one refresh cycle.
func RecordUpdate(store string, err error, duration time.Duration, cached int) {
	if updateTotal == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	updateTotal.WithLabelValues(store, status).Inc()
	updateDuration.WithLabelValues(store).Observe(duration.Seconds())
	if err == nil {
		secretsCached.WithLabelValues(store).Set(float64(cached))
	}
}

// RecordLookup records a single GetSecret cache lookup.
func RecordLookup(store string, found bool) {
	if lookupTotal == nil {
		return
	}
	result := "hit"
	if !found {
		result = "miss"
	}
	lookupTotal.WithLabelValues(store, result).Inc()
}
