// Package metrics owns the Prometheus collectors of the service.
// All methods are safe on a nil *Metrics so components can run without them.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics groups the HTTP RED metrics and order counters
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
	ordersCreated prometheus.Counter
	orderValue    prometheus.Counter
	orderFailures *prometheus.CounterVec
	statusUpdates *prometheus.CounterVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Number of orders persisted.",
		}),
		orderValue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_value_total",
			Help: "Sum of total_amount over persisted orders.",
		}),
		orderFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_create_failures_total",
				Help: "Order creations that did not persist, by reason.",
			},
			[]string{"reason"},
		),
		statusUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_updates_total",
				Help: "Order status changes, by new status.",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.httpRequests, m.httpDurations, m.ordersCreated, m.orderValue, m.orderFailures, m.statusUpdates)
	return m
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath() // low-cardinality template, empty for unmatched routes
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDurations.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// OrderCreated counts a persisted order and its value
func (m *Metrics) OrderCreated(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.orderValue.Add(total.InexactFloat64())
}

// OrderCreateFailed counts a failed order creation
func (m *Metrics) OrderCreateFailed(reason string) {
	if m == nil {
		return
	}
	m.orderFailures.WithLabelValues(reason).Inc()
}

// StatusUpdated counts an order status change
func (m *Metrics) StatusUpdated(status string) {
	if m == nil {
		return
	}
	m.statusUpdates.WithLabelValues(status).Inc()
}
