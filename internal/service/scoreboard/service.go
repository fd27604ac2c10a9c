package scoreboard

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/metrics"
)

type contributorRepo interface {
	GetOrCreateForUpdate(ctx context.Context, seed *domain.Contributor) (*domain.Contributor, error)
	Update(ctx context.Context, c *domain.Contributor) error
	GetByName(ctx context.Context, name string) (*domain.Contributor, error)
	List(ctx context.Context) ([]*domain.Contributor, error)
}

type awardLedger interface {
	Append(ctx context.Context, a domain.PointAward) error
	ListByContributor(ctx context.Context, name string, limit int) ([]domain.PointAward, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service keeps contributor profiles and the points ledger.
type Service struct {
	contributors contributorRepo
	ledger       awardLedger
	tx           txManager
	thresholds   domain.BadgeThresholds
	metrics      *metrics.Metrics
	log          *slog.Logger
}

// NewService creates a new Scoreboard service. m may be nil.
func NewService(
	log *slog.Logger,
	contributors contributorRepo,
	ledger awardLedger,
	tx txManager,
	thresholds domain.BadgeThresholds,
	m *metrics.Metrics,
) *Service {
	return &Service{
		contributors: contributors,
		ledger:       ledger,
		tx:           tx,
		thresholds:   thresholds,
		metrics:      m,
		log:          log.With("service", "scoreboard"),
	}
}

// Thresholds returns the badge tiers the service grades with.
func (s *Service) Thresholds() domain.BadgeThresholds { return s.thresholds }

// Progress returns the badge progress of c in [0, 1].
func (s *Service) Progress(c *domain.Contributor) float64 {
	return s.thresholds.Progress(c.Points)
}

func (s *Service) grade(c *domain.Contributor) *domain.Contributor {
	c.Badge = s.thresholds.BadgeFor(c.Points)
	return c
}
