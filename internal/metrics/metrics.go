// Package metrics exposes Prometheus collectors for the community engine.
// All recording methods are safe to call on a nil *Metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// Metrics holds Prometheus metrics of the engine.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	PointsAwarded       *prometheus.CounterVec
	Reactions           *prometheus.CounterVec
	Registrations       *prometheus.CounterVec
	NotificationsRaised prometheus.Counter
	InsightRefreshes    *prometheus.CounterVec
}

// New registers the engine metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		PointsAwarded: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "points_awarded_total",
				Help:      "Points granted to contributors",
			},
			[]string{"reason"},
		),
		Reactions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reactions_total",
				Help:      "Reaction counter changes",
			},
			[]string{"type", "direction"},
		),
		Registrations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "event_registrations_total",
				Help:      "Event registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		NotificationsRaised: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "admin_notifications_total",
				Help:      "Admin notifications appended to the log",
			},
		),
		InsightRefreshes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insight_refreshes_total",
				Help:      "Insight recomputations by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObservePoints records an applied point award.
func (m *Metrics) ObservePoints(reason string, amount int) {
	if m == nil {
		return
	}
	m.PointsAwarded.WithLabelValues(reason).Add(float64(amount))
}

// ObserveReaction records one reaction counter change.
func (m *Metrics) ObserveReaction(reactionType, direction string) {
	if m == nil {
		return
	}
	m.Reactions.WithLabelValues(reactionType, direction).Inc()
}

// ObserveRegistration records a registration attempt.
func (m *Metrics) ObserveRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// ObserveNotification records an appended admin notification.
func (m *Metrics) ObserveNotification() {
	if m == nil {
		return
	}
	m.NotificationsRaised.Inc()
}

// ObserveRefresh records an insight recomputation.
func (m *Metrics) ObserveRefresh(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.InsightRefreshes.WithLabelValues(outcome).Inc()
}

// GinMiddleware tracks request count, duration and in-flight requests per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		m.RequestCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
