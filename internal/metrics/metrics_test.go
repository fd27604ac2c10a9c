package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePoints("comment_posted", 5)
		m.ObserveReaction("like", "added")
		m.ObserveRegistration("success")
		m.ObserveNotification()
		m.ObserveRefresh(nil)
	})
}

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.ObservePoints("comment_posted", 5)
	m.ObservePoints("comment_posted", 5)
	m.ObserveRegistration("capacity")
	m.ObserveRefresh(errors.New("boom"))
	m.ObserveNotification()

	assert.Equal(t, 10.0, testutil.ToFloat64(m.PointsAwarded.WithLabelValues("comment_posted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues("capacity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InsightRefreshes.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsRaised))
}

func TestMetrics_GinMiddleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	m := New(prometheus.NewRegistry())
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/items/:id", "418")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}
