// Package redis delivers admin notifications to a Redis stream so that
// dashboards and chat bridges can consume them.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/community-engine/internal/config"
	"github.com/heartmarshall/community-engine/internal/domain"
)

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Notifier appends admin notifications to a capped stream.
type Notifier struct {
	client *goredis.Client
	stream string
	maxLen int64
	log    *slog.Logger
}

// NewNotifier creates a Notifier writing to stream. maxLen <= 0 disables trimming.
func NewNotifier(client *goredis.Client, stream string, maxLen int64, log *slog.Logger) *Notifier {
	return &Notifier{
		client: client,
		stream: stream,
		maxLen: maxLen,
		log:    log.With("adapter", "redis_notifier"),
	}
}

// Publish adds n to the stream, trimming it approximately to maxLen entries.
func (p *Notifier) Publish(ctx context.Context, n domain.AdminNotification) error {
	args := &goredis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"id":        n.ID.String(),
			"type":      n.Type.String(),
			"title":     n.Title,
			"message":   n.Message,
			"timestamp": n.Timestamp.UTC().Format(time.RFC3339Nano),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	entryID, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	p.log.InfoContext(ctx, "notification published",
		slog.String("stream", p.stream),
		slog.String("entry_id", entryID),
		slog.String("notification_id", n.ID.String()),
	)
	return nil
}

// Close closes the underlying client.
func (p *Notifier) Close() error {
	return p.client.Close()
}
