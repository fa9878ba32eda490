// Package metrics exposes Prometheus collectors for HTTP traffic and sales.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances (tests) never collide on
// the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	statusClass  *prometheus.CounterVec
	salesCreated prometheus.Counter
	itemsDropped prometheus.Counter
	salesRevenue prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		statusClass: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		}, []string{"category"}),
		salesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_created_total",
			Help: "Sales persisted",
		}),
		itemsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_sale_items_dropped_total",
			Help: "Cart lines skipped because the product id was unknown",
		}),
		salesRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_revenue_total",
			Help: "Sum of sale totals",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.statusClass,
		m.salesCreated, m.itemsDropped, m.salesRevenue,
	)
	return m
}

// Middleware records count, latency and status class of every request.
// Unmatched routes are grouped under one path label.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		m.requests.WithLabelValues(c.Request.Method, path, statusStr).Inc()
		m.duration.WithLabelValues(c.Request.Method, path, statusStr).Observe(time.Since(start).Seconds())
		if category := statusCategory(status); category != "" {
			m.statusClass.WithLabelValues(category).Inc()
		}
	}
}

// SaleCreated is safe to call on a nil receiver.
func (m *Metrics) SaleCreated(total float64, dropped int) {
	if m == nil {
		return
	}
	m.salesCreated.Inc()
	m.salesRevenue.Add(total)
	if dropped > 0 {
		m.itemsDropped.Add(float64(dropped))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}
