package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notebook_store_operations_total",
			Help: "Key-value store operations by backend, operation and result",
		},
		[]string{"backend", "operation", "result"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notebook_store_operation_duration_seconds",
			Help:    "Key-value store operation latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		},
		[]string{"backend", "operation"},
	)

	CollectionWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notebook_collection_writes_total",
			Help: "Full-collection rewrites by collection key",
		},
		[]string{"collection"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notebook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	AICompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notebook_ai_completions_total",
			Help: "AI completion requests by action and result",
		},
		[]string{"action", "result"},
	)
)

func RecordStoreOperation(backend, operation string, err error, duration time.Duration) {
	StoreOperations.WithLabelValues(backend, operation, result(err)).Inc()
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

func IncrementCollectionWrite(collection string) {
	CollectionWrites.WithLabelValues(collection).Inc()
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementAICompletion(action string, err error) {
	AICompletions.WithLabelValues(action, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
