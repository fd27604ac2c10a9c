package app

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/community-engine/internal/adapter/redis"
	"github.com/heartmarshall/community-engine/internal/config"
	"github.com/heartmarshall/community-engine/internal/metrics"
	"github.com/heartmarshall/community-engine/internal/service/insight"
)

// runtime holds the long-lived dependencies shared by the commands.
type runtime struct {
	cfg      *config.Config
	log      *slog.Logger
	backend  *backend
	redis    *goredis.Client
	notifier *redis.Notifier
	services *services
}

// bootstrap loads config, opens storage and the optional Redis delivery
// stream, and wires the services. m may be nil.
func bootstrap(ctx context.Context, m *metrics.Metrics) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	b, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, log: logger, backend: b}

	// A typed nil *redis.Notifier must not reach the insight service.
	var publisher insight.Publisher
	if cfg.Redis.Enabled() {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			b.close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		rt.redis = client
		rt.notifier = redis.NewNotifier(client, cfg.Redis.NotificationStream, cfg.Redis.StreamMaxLen, logger)
		publisher = rt.notifier
		logger.Info("redis connected", slog.String("stream", cfg.Redis.NotificationStream))
	} else {
		logger.Info("redis disabled, notifications stay in the store only")
	}

	rt.services = newServices(logger, cfg, b, publisher, m)
	return rt, nil
}

// Close releases storage and Redis connections.
func (rt *runtime) Close() {
	if rt.notifier != nil {
		if err := rt.notifier.Close(); err != nil {
			rt.log.Error("close redis", slog.String("error", err.Error()))
		}
	}
	rt.backend.close()
}
