package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	AlertEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_alert_events_total",
			Help: "Alert lifecycle events by kind and alert type",
		},
		[]string{"kind", "type"},
	)

	LessonsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_lessons_completed_total",
			Help: "Lesson completions by module, including repeats",
		},
		[]string{"module"},
	)

	FeedItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_feed_items_total",
			Help: "Feed items processed by outcome",
		},
		[]string{"outcome"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prep_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	StreamDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_stream_dropped_total",
			Help: "Alert events dropped for stream subscribers with a full buffer",
		},
		[]string{"kind"},
	)

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, AlertEvents, LessonsCompleted, FeedItems, RateLimited, StreamDropped)
	})
}

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
