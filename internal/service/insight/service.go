package insight

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/metrics"
)

type discussionSnapshot interface {
	Snapshot(ctx context.Context, category domain.Category) ([]*domain.Discussion, error)
}

type insightStore interface {
	SaveReport(ctx context.Context, report domain.InsightReport) error
	LatestReport(ctx context.Context) (*domain.InsightReport, error)
	NotifyStateForUpdate(ctx context.Context) (domain.NotifyState, error)
	SaveNotifyState(ctx context.Context, state domain.NotifyState) error
}

type notificationLog interface {
	Append(ctx context.Context, n domain.AdminNotification, keep int) error
	List(ctx context.Context, limit int) ([]domain.AdminNotification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// Publisher delivers raised notifications outside the process.
type Publisher interface {
	Publish(ctx context.Context, n domain.AdminNotification) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options tunes mining and notification.
type Options struct {
	TopN              int
	ExampleLimit      int
	NotifyThreshold   int
	NotificationLimit int
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		TopN:              DefaultTopN,
		ExampleLimit:      DefaultExampleLimit,
		NotifyThreshold:   2,
		NotificationLimit: 50,
	}
}

// Service keeps the latest insight report and the admin notification log.
type Service struct {
	discussions   discussionSnapshot
	insights      insightStore
	notifications notificationLog
	publisher     Publisher
	tx            txManager
	opts          Options
	metrics       *metrics.Metrics
	log           *slog.Logger
}

// NewService creates a new Insight service. publisher and m may be nil.
func NewService(
	log *slog.Logger,
	discussions discussionSnapshot,
	insights insightStore,
	notifications notificationLog,
	publisher Publisher,
	tx txManager,
	opts Options,
	m *metrics.Metrics,
) *Service {
	return &Service{
		discussions:   discussions,
		insights:      insights,
		notifications: notifications,
		publisher:     publisher,
		tx:            tx,
		opts:          opts,
		metrics:       m,
		log:           log.With("service", "insight"),
	}
}
