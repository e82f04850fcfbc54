package monitoring

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Payment metrics
	paymentInitTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_initializations_total",
			Help: "Total number of payment initializations",
		},
		[]string{"status"},
	)

	paymentVerifyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Total number of payment verifications",
		},
		[]string{"status"},
	)

	// Ticket metrics
	ticketsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Total number of tickets issued",
		},
	)

	notificationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Total number of failed email deliveries",
		},
		[]string{"kind"},
	)

	// Realtime metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Number of active websocket connections",
		},
	)

	broadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_broadcasts_total",
			Help: "Total number of broadcast realtime events",
		},
		[]string{"event"},
	)
)

// TrackHTTPRequest records a completed HTTP request.
func TrackHTTPRequest(method, endpoint, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackPaymentInit records a payment initialization attempt.
func TrackPaymentInit(status string) {
	paymentInitTotal.WithLabelValues(status).Inc()
}

// TrackPaymentVerify records a payment verification attempt.
func TrackPaymentVerify(status string) {
	paymentVerifyTotal.WithLabelValues(status).Inc()
}

// TrackTicketIssued records a successfully issued ticket.
func TrackTicketIssued() {
	ticketsIssuedTotal.Inc()
}

// TrackNotificationFailure records a failed email delivery.
func TrackNotificationFailure(kind string) {
	notificationFailuresTotal.WithLabelValues(kind).Inc()
}

// TrackWebsocketConnect records a websocket client joining.
func TrackWebsocketConnect() {
	websocketConnections.Inc()
}

// TrackWebsocketDisconnect records a websocket client leaving.
func TrackWebsocketDisconnect() {
	websocketConnections.Dec()
}

// TrackBroadcast records a realtime event fanned out to clients.
func TrackBroadcast(event string) {
	broadcastsTotal.WithLabelValues(event).Inc()
}

// StartMetricsServer exposes /metrics on its own port.
func StartMetricsServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Printf("metrics server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("metrics server stopped: %v", err)
	}
}
