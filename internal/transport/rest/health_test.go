package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error {
	return m.err
}

func serveHealth(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	r := gin.New()
	r.GET("/probe", h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec, resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(map[string]Pinger{"store": &dbPingerMock{err: errors.New("down")}}, "test-version")
	rec, resp := serveHealth(t, h.Live)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_AllUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(map[string]Pinger{"store": &dbPingerMock{}, "redis": &dbPingerMock{}}, "v")
	rec, resp := serveHealth(t, h.Ready)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestReady_ComponentDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(map[string]Pinger{
		"store": &dbPingerMock{},
		"redis": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}, "v")
	rec, resp := serveHealth(t, h.Ready)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if resp.Components["redis"].Status != "down" {
		t.Errorf("expected redis down, got %+v", resp.Components)
	}
}

func TestHealth_IncludesVersionAndLatency(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(map[string]Pinger{"store": &dbPingerMock{}}, "1.2.3")
	rec, resp := serveHealth(t, h.Health)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", resp.Version)
	}
	store, ok := resp.Components["store"]
	if !ok {
		t.Fatal("expected store component")
	}
	if store.Status != "ok" || store.Latency == "" {
		t.Errorf("expected ok with latency, got %+v", store)
	}
}

func TestHealth_Down(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(map[string]Pinger{"store": &dbPingerMock{err: errors.New("down")}}, "1.2.3")
	rec, resp := serveHealth(t, h.Health)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
}
