// Command seeder fills empty collections with the demo community: a few
// contributors with opening balances, discussions with comment threads and
// upcoming events. Collections that already hold data are left alone, so it
// is safe to run repeatedly.
//
// Flags:
//
//	--phase  comma-separated list of phases to run (contributors, discussions, events; default: all)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/community-engine/internal/app"
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	flag.Parse()

	var phases []string
	if *phaseFlag != "" {
		for _, p := range strings.Split(*phaseFlag, ",") {
			if p = strings.TrimSpace(p); p != "" {
				phases = append(phases, p)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.RunSeeder(ctx, phases); err != nil {
		slog.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
