package app

import (
	"log/slog"

	"github.com/heartmarshall/community-engine/internal/app/seeder"
	"github.com/heartmarshall/community-engine/internal/config"
	"github.com/heartmarshall/community-engine/internal/metrics"
	"github.com/heartmarshall/community-engine/internal/service/discussion"
	"github.com/heartmarshall/community-engine/internal/service/event"
	"github.com/heartmarshall/community-engine/internal/service/insight"
	"github.com/heartmarshall/community-engine/internal/service/reaction"
	"github.com/heartmarshall/community-engine/internal/service/scoreboard"
)

type services struct {
	scoreboard *scoreboard.Service
	insight    *insight.Service
	discussion *discussion.Service
	reaction   *reaction.Service
	event      *event.Service
}

// newServices wires the engine services over b. publisher may be nil.
func newServices(
	logger *slog.Logger,
	cfg *config.Config,
	b *backend,
	publisher insight.Publisher,
	m *metrics.Metrics,
) *services {
	board := scoreboard.NewService(logger, b.contributors, b.awards, b.tx, cfg.Community.BadgeThresholds(), m)

	insightSvc := insight.NewService(logger, b.discussions, b.insights, b.notifications, publisher, b.tx, insightOptions(cfg), m)

	return &services{
		scoreboard: board,
		insight:    insightSvc,
		discussion: discussion.NewService(logger, b.discussions, b.comments, board, insightSvc, b.tx),
		reaction:   reaction.NewService(logger, b.comments, b.reactions, board, b.tx, m),
		event:      event.NewService(logger, b.events, board, b.tx, m),
	}
}

func insightOptions(cfg *config.Config) insight.Options {
	opts := insight.DefaultOptions()
	opts.TopN = cfg.Insight.TopN
	opts.ExampleLimit = cfg.Insight.ExampleLimit
	opts.NotifyThreshold = cfg.Insight.NotifyThreshold
	opts.NotificationLimit = cfg.Community.NotificationLimit
	return opts
}

func (s *services) seederStores(b *backend) seeder.Stores {
	return seeder.Stores{
		Contributors: b.contributors,
		Points:       s.scoreboard,
		Discussions:  b.discussions,
		Comments:     b.comments,
		Events:       b.events,
	}
}
