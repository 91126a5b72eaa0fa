package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MediaMetrics records ingest and delivery outcomes.
type MediaMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	bytes    *prometheus.CounterVec
}

// NewMediaMetrics registers the media metrics on the provided registerer.
func NewMediaMetrics(reg prometheus.Registerer) *MediaMetrics {
	if reg == nil {
		return &MediaMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "media_op_duration_seconds",
		Help:    "Duration of media operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "media_op_success",
		Help: "Successful media operations.",
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "media_op_failure",
		Help: "Failed media operations.",
	}, []string{"op"})
	transferred := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "media_bytes_total",
		Help: "Bytes transferred by media operations.",
	}, []string{"op"})
	reg.MustRegister(duration, success, failure, transferred)
	return &MediaMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		bytes:    transferred,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *MediaMetrics) ObserveDuration(op string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *MediaMetrics) IncSuccess(op string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *MediaMetrics) IncFailure(op string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(op)).Inc()
}

// AddBytes adds transferred bytes for the named operation.
func (m *MediaMetrics) AddBytes(op string, n int64) {
	if m == nil || m.bytes == nil || n <= 0 {
		return
	}
	m.bytes.WithLabelValues(normalizeLabel(op)).Add(float64(n))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
