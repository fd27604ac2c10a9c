package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/community-engine/internal/config"
)

// RunInsights recomputes the insight report once and exits. It is meant for
// an external scheduler running against the postgres store.
func RunInsights(ctx context.Context) error {
	rt, err := bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.backend.driver == config.DriverMemory {
		rt.log.Warn("insight refresh against the in-memory store only sees data of this process")
	}

	report, err := rt.services.insight.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh insights: %w", err)
	}

	top := "none"
	if insight, ok := report.Top(); ok {
		top = insight.IssueType
	}
	rt.log.Info("insights refreshed",
		slog.Int("issues", len(report.Insights)),
		slog.String("top_issue", top),
	)
	return nil
}

// RunSeeder seeds empty collections with demo data regardless of
// community.seed_defaults. phases limits the run when non-empty.
func RunSeeder(ctx context.Context, phases []string) error {
	rt, err := bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := seedDefaults(ctx, rt, phases); err != nil {
		return err
	}

	if _, err := rt.services.insight.Refresh(ctx); err != nil {
		rt.log.Warn("insight refresh after seeding failed", slog.String("error", err.Error()))
	}

	rt.log.Info("seeding completed")
	return nil
}
