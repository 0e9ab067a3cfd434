package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rise-and-shine/foodcatalog/http/server"
)

// MetricsPath is where MetricsHandler is usually mounted.
const MetricsPath = "/metrics"

//nolint:gochecknoglobals // prometheus collectors are registered once
var (
	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "foodcatalog",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodcatalog",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "foodcatalog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// NewMetricsMW creates a middleware that records request count, latency and in-flight gauge.
// Requests to MetricsPath are not recorded.
func NewMetricsMW() server.Middleware {
	return server.Middleware{
		Priority: 850,
		Handler: func(c *fiber.Ctx) error {
			if c.Path() == MetricsPath {
				return c.Next()
			}

			start := time.Now()
			requestsInFlight.Inc()
			defer requestsInFlight.Dec()

			err := c.Next()

			status := c.Response().StatusCode()
			if err != nil && status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}

			route := c.Route().Path
			requestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

			return err
		},
	}
}

// MetricsHandler serves the default prometheus registry.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
