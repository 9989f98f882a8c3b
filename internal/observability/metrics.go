package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relay",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	wsConnections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "ws",
			Name:      "connections_total",
			Help:      "WebSocket connections by resolved role.",
		},
		[]string{"role"},
	)
	framesRelayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "ws",
			Name:      "frames_relayed_total",
			Help:      "Controller event frames broadcast to listeners.",
		},
		[]string{"tag"},
	)
	sinkFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "ws",
			Name:      "sink_failures_total",
			Help:      "Listener sinks dropped after a failed broadcast write.",
		},
	)
	broadcastDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "relay",
			Subsystem: "ws",
			Name:      "broadcast_duration_seconds",
			Help:      "Fan-out duration of one broadcast call.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	evictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "registry",
			Name:      "evictions_total",
			Help:      "Controllers evicted by the heartbeat sweeper.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			wsConnections, framesRelayed, sinkFailures, broadcastDuration,
			evictions,
		)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordConnection(role string) {
	RegisterMetrics()
	wsConnections.WithLabelValues(role).Inc()
}

func RecordRelayedFrame(tag byte, dropped int, duration time.Duration) {
	RegisterMetrics()
	framesRelayed.WithLabelValues("0x" + strconv.FormatUint(uint64(tag), 16)).Inc()
	if dropped > 0 {
		sinkFailures.Add(float64(dropped))
	}
	broadcastDuration.Observe(duration.Seconds())
}

func RecordEvictions(n int) {
	RegisterMetrics()
	evictions.Add(float64(n))
}
