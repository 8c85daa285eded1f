package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service's collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yap",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yap",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yap",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	rewardOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yap",
			Subsystem: "rewards",
			Name:      "outcomes_total",
			Help:      "Reward issuance outcomes by status.",
		},
		[]string{"status"},
	)

	rewardDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "yap",
			Subsystem: "rewards",
			Name:      "issue_duration_seconds",
			Help:      "Time spent issuing a reward transfer.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	lessonCompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yap",
			Subsystem: "lessons",
			Name:      "completions_total",
			Help:      "Lesson completion requests by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		rewardOutcomes,
		rewardDuration,
		lessonCompletions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records HTTP metrics labelled by the matched gin route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordReward counts one issuance outcome.
func RecordReward(status string, duration time.Duration) {
	rewardOutcomes.WithLabelValues(status).Inc()
	if duration > 0 {
		rewardDuration.Observe(duration.Seconds())
	}
}

// RecordCompletion counts a completion request by outcome: created, duplicate,
// invalid or failed.
func RecordCompletion(outcome string) {
	lessonCompletions.WithLabelValues(outcome).Inc()
}
