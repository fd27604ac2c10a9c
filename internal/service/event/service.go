package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/metrics"
)

type eventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	AddRegistration(ctx context.Context, eventID uuid.UUID, userID string, at time.Time) error
	List(ctx context.Context) ([]*domain.Event, error)
}

type pointAwarder interface {
	ApplyPoints(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the event registry.
type Service struct {
	events  eventRepo
	points  pointAwarder
	tx      txManager
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewService creates a new Event service. m may be nil.
func NewService(
	log *slog.Logger,
	events eventRepo,
	points pointAwarder,
	tx txManager,
	m *metrics.Metrics,
) *Service {
	return &Service{
		events:  events,
		points:  points,
		tx:      tx,
		metrics: m,
		log:     log.With("service", "event"),
	}
}
