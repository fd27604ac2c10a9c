package rest

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency checked by the readiness and health probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	components map[string]Pinger
	version    string
}

// NewHealthHandler creates a HealthHandler. components maps a component
// name ("store", "redis") to its check.
func NewHealthHandler(components map[string]Pinger, version string) *HealthHandler {
	return &HealthHandler{components: components, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready is the readiness probe: 200 if every component answers, 503 if not.
func (h *HealthHandler) Ready(c *gin.Context) {
	components, up := h.check(c.Request.Context())
	if !up {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "down", Components: components, Timestamp: time.Now()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health is the full health check with per-component latency and version.
func (h *HealthHandler) Health(c *gin.Context) {
	components, up := h.check(c.Request.Context())

	status, overall := http.StatusOK, "ok"
	if !up {
		status, overall = http.StatusServiceUnavailable, "down"
	}
	c.JSON(status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.components))
	for name := range h.components {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]CompStatus, len(names))
	up := true
	for _, name := range names {
		start := time.Now()
		if err := h.components[name].Ping(ctx); err != nil {
			out[name] = CompStatus{Status: "down"}
			up = false
			continue
		}
		out[name] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}
	return out, up
}
