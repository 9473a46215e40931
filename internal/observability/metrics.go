package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_http_requests_total",
			Help: "Total number of HTTP requests processed by the delivery service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	wsActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_ws_active_sessions",
			Help: "Number of active websocket sessions on this process.",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_ws_events_total",
			Help: "Total number of websocket lifecycle events.",
		},
		[]string{"event"},
	)
	ingestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_ingest_total",
			Help: "Total number of message submissions by outcome.",
		},
		[]string{"outcome"},
	)
	queueEnqueuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_queue_enqueued_total",
			Help: "Total number of events offered to the distribution queue.",
		},
		[]string{"kind"},
	)
	queueFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_queue_fallback_total",
			Help: "Total number of direct-distribution fallbacks taken when the queue was saturated or unreachable.",
		},
	)
	queuePublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_queue_publish_errors_total",
			Help: "Total number of distribution publish failures reported by the broker.",
		},
	)
	statusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_status_transitions_total",
			Help: "Total number of effective delivery-status transitions.",
		},
		[]string{"state"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		wsActiveSessions,
		wsEventsTotal,
		ingestTotal,
		queueEnqueuedTotal,
		queueFallbackTotal,
		queuePublishErrorsTotal,
		statusTransitionsTotal,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncWSActive() {
	wsActiveSessions.Inc()
}

func DecWSActive() {
	wsActiveSessions.Dec()
}

func IncWSEvent(event string) {
	wsEventsTotal.WithLabelValues(event).Inc()
}

func IncIngest(outcome string) {
	ingestTotal.WithLabelValues(outcome).Inc()
}

func IncQueueEnqueued(kind string) {
	queueEnqueuedTotal.WithLabelValues(kind).Inc()
}

func IncQueueFallback() {
	queueFallbackTotal.Inc()
}

func IncQueuePublishError() {
	queuePublishErrorsTotal.Inc()
}

func IncStatusTransition(state string) {
	statusTransitionsTotal.WithLabelValues(state).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
