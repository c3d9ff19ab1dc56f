// metrics declares prometheus metrics of the novel server and loops.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bearnovel_api_requests_total",
			Help: "Total number of API requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bearnovel_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bearnovel_cache_lookups_total",
			Help: "Total number of cache lookups by key and result (hit, miss, error)",
		},
		[]string{"key", "result"},
	)

	LoopRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bearnovel_loop_runs_total",
			Help: "Total number of loop task runs by loop type and result (ok, error)",
		},
		[]string{"loop", "result"},
	)

	NovelsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bearnovel_novels_purged_total",
			Help: "Total number of soft-deleted novels removed permanently",
		},
	)
)

func init() {
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(LoopRuns)
	prometheus.MustRegister(NovelsPurged)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts requests and observes their duration.
//
// Routes are labeled with their path pattern (e.g. "/api/novels/:id").
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			APIRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
