package discussion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

type discussionRepo interface {
	Create(ctx context.Context, d *domain.Discussion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	List(ctx context.Context, filter domain.DiscussionFilter) ([]*domain.Discussion, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)
	SetSolved(ctx context.Context, id uuid.UUID) error
}

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
}

type pointAwarder interface {
	ApplyPoints(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error)
}

type insightRefresher interface {
	Refresh(ctx context.Context) (*domain.InsightReport, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages discussions and their comment threads.
type Service struct {
	discussions discussionRepo
	comments    commentRepo
	points      pointAwarder
	insights    insightRefresher
	tx          txManager
	log         *slog.Logger
}

// NewService creates a new Discussion service.
func NewService(
	log *slog.Logger,
	discussions discussionRepo,
	comments commentRepo,
	points pointAwarder,
	insights insightRefresher,
	tx txManager,
) *Service {
	return &Service{
		discussions: discussions,
		comments:    comments,
		points:      points,
		insights:    insights,
		tx:          tx,
		log:         log.With("service", "discussion"),
	}
}

// refreshInsights re-mines Technical discussions after a committed change.
// The change itself already succeeded, so a failure is only logged.
func (s *Service) refreshInsights(ctx context.Context) {
	if _, err := s.insights.Refresh(ctx); err != nil {
		s.log.WarnContext(ctx, "insight refresh failed", slog.String("error", err.Error()))
	}
}

func authorOrAnonymous(author string) string {
	if author == "" {
		return domain.AnonymousAuthor
	}
	return author
}
