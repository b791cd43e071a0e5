package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperations counts store operations by name and outcome.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "startup_connect_store_operations_total",
		Help: "Total number of store operations by operation and outcome",
	}, []string{"operation", "outcome"})

	// StoreFlushLatency records how long a full state flush takes.
	StoreFlushLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "startup_connect_store_flush_latency_seconds",
		Help:    "Latency of writing the full state to durable storage",
		Buckets: prometheus.DefBuckets,
	})

	// StorageLatency records durable storage latency by driver and operation.
	StorageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "startup_connect_storage_latency_seconds",
		Help:    "Durable storage latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"driver", "operation"})

	// StorageErrors counts durable storage errors by driver and operation.
	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "startup_connect_storage_errors_total",
		Help: "Total number of durable storage errors",
	}, []string{"driver", "operation"})

	// SeedFallbacks counts collections that fell back to seed data on load.
	SeedFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "startup_connect_seed_fallbacks_total",
		Help: "Collections initialized from the seed dataset, by collection and reason",
	}, []string{"collection", "reason"})

	// RedisErrors counts Redis command errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "startup_connect_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "startup_connect_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "startup_connect_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// ObserveStorage records the latency and outcome of one storage call.
func ObserveStorage(driver, operation string, start time.Time, err error) {
	StorageLatency.WithLabelValues(driver, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		StorageErrors.WithLabelValues(driver, operation).Inc()
	}
}

// CountStoreOperation increments the operation counter with an ok/error outcome.
func CountStoreOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreOperations.WithLabelValues(operation, outcome).Inc()
}
