package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "parkgate"

// unmeteredPaths are scrape and health endpoints hit on a timer; counting them
// would drown the gate traffic.
var unmeteredPaths = map[string]bool{
	"/metrics": true,
	"/health":  true,
	"/healthz": true,
}

// PrometheusMiddleware holds the HTTP and gate metrics.
type PrometheusMiddleware struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	inFlight   prometheus.Gauge
	gateEvents *prometheus.CounterVec
}

// NewPrometheusMiddleware creates the metrics and registers them on reg.
func NewPrometheusMiddleware(reg prometheus.Registerer) (*PrometheusMiddleware, error) {
	m := &PrometheusMiddleware{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			// Gate actions should settle well under a second; the tail covers
			// snapshot uploads.
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		gateEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gate_events_total",
			Help:      "Gate actions by outcome.",
		}, []string{"action", "outcome"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency, m.inFlight, m.gateEvents} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler records every request except scrapes and health checks.
func (m *PrometheusMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if unmeteredPaths[c.Path()] {
			return c.Next()
		}

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		err := c.Next()

		// Route pattern (/api/admin/residents/:id); unmatched requests share one label
		// so scanners cannot blow up the series count.
		route := c.Route().Path
		if route == "" || route == "/" && c.Path() != "/" {
			route = "unmatched"
		}

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		// Label values outlive the request; fiber's strings point into reused buffers.
		method := utils.CopyString(c.Method())
		route = utils.CopyString(route)
		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// GateEvent counts one gate action outcome, e.g. ("guest_checkin", "ok").
func (m *PrometheusMiddleware) GateEvent(action, outcome string) {
	if m == nil {
		return
	}
	m.gateEvents.WithLabelValues(action, outcome).Inc()
}
