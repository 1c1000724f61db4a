package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Placement outcomes used as the "outcome" label.
const (
	OutcomePlaced            = "placed"
	OutcomeEmptyCart         = "empty_cart"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeError             = "error"
)

// OrderMetrics records order placement results.
type OrderMetrics struct {
	placed   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lines    prometheus.Histogram
}

// NewOrderMetrics registers the order metrics on reg. A nil registerer yields a no-op recorder.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_placement_duration_seconds",
		Help:    "Time spent inside the order placement unit of work.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	lines := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_lines_per_order",
		Help:    "Number of lines in successfully placed orders.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})
	reg.MustRegister(placed, duration, lines)
	return &OrderMetrics{placed: placed, duration: duration, lines: lines}
}

// ObservePlacement records one placement attempt.
func (m *OrderMetrics) ObservePlacement(outcome string, elapsed time.Duration) {
	if m == nil || m.placed == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	m.placed.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveLines records the line count of a placed order.
func (m *OrderMetrics) ObserveLines(count int) {
	if m == nil || m.lines == nil {
		return
	}
	m.lines.Observe(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
