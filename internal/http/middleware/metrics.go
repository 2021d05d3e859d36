package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestMetrics counts requests per route template and status code.
type RequestMetrics struct {
	total     int64
	active    int64
	errors    int64
	latencyMs int64
	maxMs     int64
	startTime time.Time

	mu       sync.Mutex
	routes   map[string]int64
	routeMs  map[string]int64
	statuses map[int]int64
}

func NewRequestMetrics() *RequestMetrics {
	return &RequestMetrics{
		startTime: time.Now(),
		routes:    make(map[string]int64),
		routeMs:   make(map[string]int64),
		statuses:  make(map[int]int64),
	}
}

// MetricsSnapshot is a point-in-time view of the counters.
type MetricsSnapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	ErrorRate      float64          `json:"error_rate_pct"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	UptimeSeconds  float64          `json:"uptime_seconds"`
	RouteCounts    map[string]int64 `json:"route_counts"`
	RouteAvgMs     map[string]int64 `json:"route_avg_latency_ms"`
	StatusCodes    map[int]int64    `json:"status_codes"`
}

func (m *RequestMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			atomic.AddInt64(&m.active, 1)
			start := time.Now()

			err := next(c)
			if err != nil {
				// Resolve the final status before recording it.
				c.Error(err)
			}

			m.record(c, time.Since(start).Milliseconds())
			return nil
		}
	}
}

func (m *RequestMetrics) record(c echo.Context, latencyMs int64) {
	atomic.AddInt64(&m.active, -1)
	atomic.AddInt64(&m.total, 1)
	atomic.AddInt64(&m.latencyMs, latencyMs)

	for {
		current := atomic.LoadInt64(&m.maxMs)
		if latencyMs <= current || atomic.CompareAndSwapInt64(&m.maxMs, current, latencyMs) {
			break
		}
	}

	status := c.Response().Status
	if status >= http.StatusBadRequest {
		atomic.AddInt64(&m.errors, 1)
	}

	// Route templates keep ids out of the key space.
	route := c.Path()
	if route == "" {
		route = "unmatched"
	}
	route = c.Request().Method + " " + route

	m.mu.Lock()
	m.routes[route]++
	m.routeMs[route] += latencyMs
	m.statuses[status]++
	m.mu.Unlock()
}

func (m *RequestMetrics) Snapshot() MetricsSnapshot {
	total := atomic.LoadInt64(&m.total)
	errs := atomic.LoadInt64(&m.errors)

	snap := MetricsSnapshot{
		TotalRequests:  total,
		ActiveRequests: atomic.LoadInt64(&m.active),
		TotalErrors:    errs,
		MaxLatencyMs:   atomic.LoadInt64(&m.maxMs),
		UptimeSeconds:  time.Since(m.startTime).Seconds(),
	}
	if total > 0 {
		snap.AvgLatencyMs = float64(atomic.LoadInt64(&m.latencyMs)) / float64(total)
		snap.ErrorRate = float64(errs) / float64(total) * 100
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap.RouteCounts = make(map[string]int64, len(m.routes))
	snap.RouteAvgMs = make(map[string]int64, len(m.routes))
	for route, n := range m.routes {
		snap.RouteCounts[route] = n
		if n > 0 {
			snap.RouteAvgMs[route] = m.routeMs[route] / n
		}
	}
	snap.StatusCodes = make(map[int]int64, len(m.statuses))
	for code, n := range m.statuses {
		snap.StatusCodes[code] = n
	}
	return snap
}

// Handler serves the snapshot as JSON.
func (m *RequestMetrics) Handler(c echo.Context) error {
	return c.JSON(http.StatusOK, m.Snapshot())
}
