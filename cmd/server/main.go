// Command server runs the community engine HTTP API.
//
// Configuration comes from CONFIG_PATH (default ./config.yaml), an optional
// .env file and environment variables. SIGINT or SIGTERM triggers a graceful
// shutdown.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/community-engine/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
