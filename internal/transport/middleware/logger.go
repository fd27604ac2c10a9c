package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/heartmarshall/community-engine/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, route,
// status code, duration, and context identifiers (request_id, actor).
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, slog.String("route", route))
		}
		if actor, ok := ctxutil.ActorFromCtx(ctx); ok {
			attrs = append(attrs, slog.String("actor", actor))
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(ctx, level, "http.request", attrs...)
	}
}
