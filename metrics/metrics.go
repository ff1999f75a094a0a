package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefix = "foodnow"

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Order status changes, labelled by target status
	OrderTransitionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_transitions_total",
			Help: "Total number of order status changes",
		},
		[]string{"status"},
	)

	OrdersPlacedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	// Payment attempts, labelled by resulting payment status
	PaymentsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_payments_total",
			Help: "Total number of payment attempts by outcome",
		},
		[]string{"status"},
	)

	RefundFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_refund_failures_total",
			Help: "Total number of refunds that failed and were skipped",
		},
	)

	// Application decisions: submitted, approved, rejected
	ApplicationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_restaurant_applications_total",
			Help: "Total number of restaurant application events",
		},
		[]string{"event"},
	)

	EmailsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_emails_total",
			Help: "Total number of notification emails by result",
		},
		[]string{"result"},
	)
)

// Middleware records request count and latency per route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry for scraping
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordOrderTransition(status string) {
	OrderTransitionsCounter.WithLabelValues(status).Inc()
}

func RecordPayment(status string) {
	PaymentsCounter.WithLabelValues(status).Inc()
}

func RecordApplication(event string) {
	ApplicationsCounter.WithLabelValues(event).Inc()
}

func RecordEmail(result string) {
	EmailsCounter.WithLabelValues(result).Inc()
}
