package obs

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutScansTotal counts scanned units across all checkouts.
	CheckoutScansTotal prometheus.Counter
	// CheckoutTotalsTotal counts total computations by outcome.
	CheckoutTotalsTotal *prometheus.CounterVec
	// CheckoutTotalDuration records total computation latency in milliseconds.
	CheckoutTotalDuration prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers checkout Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_scans_total",
			Help:      "Total number of scanned item units.",
		})
		CheckoutTotalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_totals_total",
			Help:      "Count of checkout total computations by outcome.",
		}, []string{"result"})
		CheckoutTotalDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_total_duration_ms",
			Help:      "Latency of checkout total computations in milliseconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		})

		mustRegisterCollector(reg, CheckoutScansTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CheckoutScansTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutTotalsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutTotalsTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutTotalDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				CheckoutTotalDuration = v
			}
		})
	})
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
