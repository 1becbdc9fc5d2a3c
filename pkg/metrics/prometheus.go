package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	screensTotal    prometheus.Counter
	screenMatched   prometheus.Histogram
	screenDuration  prometheus.Histogram
	storeOpDuration *prometheus.HistogramVec
	activityTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		screensTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "screener_screens_total",
				Help: "Total number of screen evaluations",
			},
		),
		screenMatched: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screener_screen_match_ratio",
				Help:    "Fraction of the snapshot universe passing the filter",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		screenDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screener_screen_duration_seconds",
				Help:    "Duration of screen evaluations in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		storeOpDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screener_store_operation_duration_seconds",
				Help:    "Duration of filter store operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		activityTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_activity_records_total",
				Help: "Total audit entries recorded",
			},
			[]string{"action"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordScreen records one screen evaluation.
func (r *Recorder) RecordScreen(matched, total int, seconds float64) {
	r.screensTotal.Inc()
	r.screenDuration.Observe(seconds)
	if total > 0 {
		r.screenMatched.Observe(float64(matched) / float64(total))
	}
}

// RecordStoreOp records a filter store operation's latency in seconds.
func (r *Recorder) RecordStoreOp(op string, seconds float64) {
	r.storeOpDuration.WithLabelValues(op).Observe(seconds)
}

// RecordActivity records a recorded audit entry.
func (r *Recorder) RecordActivity(action string) {
	r.activityTotal.WithLabelValues(action).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
