// Command insights recomputes the issue insight report once and raises an
// admin notification when the top issue crosses the threshold. It is
// intended to be invoked by an external cron job against the postgres
// store, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/community-engine/internal/app"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.RunInsights(ctx); err != nil {
		slog.Error("insight refresh failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
