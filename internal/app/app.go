package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/community-engine/internal/app/seeder"
	"github.com/heartmarshall/community-engine/internal/metrics"
	"github.com/heartmarshall/community-engine/internal/transport/dataloader"
	"github.com/heartmarshall/community-engine/internal/transport/middleware"
	"github.com/heartmarshall/community-engine/internal/transport/rest"
)

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// the server down gracefully.
func Run(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	rt, err := bootstrap(ctx, m)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg, logger := rt.cfg, rt.log

	if cfg.Community.SeedDefaults {
		if err := seedDefaults(ctx, rt, nil); err != nil {
			return err
		}
	}

	// Warm the latest report so the first dashboard read is not a cold mine.
	if _, err := rt.services.insight.Refresh(ctx); err != nil {
		logger.Warn("initial insight refresh failed", slog.String("error", err.Error()))
	}

	if !strings.EqualFold(cfg.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(newHandlers(rt), rest.RouterConfig{
		Log:            logger,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Loaders: &dataloader.Repos{
			Contributors: rt.backend.contributors,
			Thresholds:   cfg.Community.BadgeThresholds(),
		},
		RateLimiter:   limiter,
		RatePerMinute: cfg.RateLimit.PerMinute,
		CORS:          cfg.CORS,
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", slog.String("error", err.Error()))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func newHandlers(rt *runtime) rest.Handlers {
	components := map[string]rest.Pinger{
		"store": rest.PingFunc(rt.backend.ping),
	}
	if rt.redis != nil {
		client := rt.redis
		components["redis"] = rest.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	return rest.Handlers{
		Discussion:  rest.NewDiscussionHandler(rt.services.discussion, rt.log),
		Reaction:    rest.NewReactionHandler(rt.services.reaction, rt.log),
		Contributor: rest.NewContributorHandler(rt.services.scoreboard, rt.log),
		Event:       rest.NewEventHandler(rt.services.event, rt.log),
		Insight:     rest.NewInsightHandler(rt.services.insight, rt.log),
		Health:      rest.NewHealthHandler(components, Version),
	}
}

// seedDefaults fills empty collections with demo data. phases limits the
// run when non-empty.
func seedDefaults(ctx context.Context, rt *runtime, phases []string) error {
	pipeline := seeder.NewPipeline(rt.log, rt.services.seederStores(rt.backend), rt.backend.tx)
	if err := pipeline.Run(ctx, phases); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	return nil
}
