package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Habit mutation counter (create, toggle, delete).
	HabitMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_mutation_count",
			Help: "Total number of habit mutations applied",
		},
		[]string{"operation"},
	)

	// Coach call latency (milliseconds).
	CoachCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coach_call_latency_ms",
			Help:    "Generative coach call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"status"}, // status: success, empty, error, circuit_open, skipped
	)

	// Store save latency (seconds).
	StoreSaveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_save_duration_seconds",
			Help:    "Habit collection save duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"status"},
	)

	// HTTP request latency (seconds).
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Completion events recorded by the worker.
	CompletionEventCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_event_count",
			Help: "Total number of habit completion events consumed",
		},
		[]string{"status"}, // status: recorded, duplicate, malformed
	)
)

// IncrementHabitMutation bumps the mutation counter for an operation.
func IncrementHabitMutation(operation string) {
	HabitMutationCount.WithLabelValues(operation).Inc()
}

// RecordCoachCallLatency records one coach call outcome.
func RecordCoachCallLatency(status string, duration time.Duration) {
	CoachCallLatency.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

// RecordStoreSaveDuration records one full-collection save.
func RecordStoreSaveDuration(status string, duration time.Duration) {
	StoreSaveDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration records one HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementCompletionEvent bumps the worker-side completion event counter.
func IncrementCompletionEvent(status string) {
	CompletionEventCount.WithLabelValues(status).Inc()
}
