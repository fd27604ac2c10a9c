package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/community-engine/internal/adapter/memory"
	"github.com/heartmarshall/community-engine/internal/adapter/postgres"
	pgcontributor "github.com/heartmarshall/community-engine/internal/adapter/postgres/contributor"
	pgdiscussion "github.com/heartmarshall/community-engine/internal/adapter/postgres/discussion"
	pgevent "github.com/heartmarshall/community-engine/internal/adapter/postgres/event"
	pgnotification "github.com/heartmarshall/community-engine/internal/adapter/postgres/notification"
	pgreaction "github.com/heartmarshall/community-engine/internal/adapter/postgres/reaction"
	"github.com/heartmarshall/community-engine/internal/config"
	"github.com/heartmarshall/community-engine/internal/domain"
)

type discussionStore interface {
	Create(ctx context.Context, d *domain.Discussion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	List(ctx context.Context, filter domain.DiscussionFilter) ([]*domain.Discussion, error)
	Snapshot(ctx context.Context, category domain.Category) ([]*domain.Discussion, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)
	SetSolved(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type commentStore interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateReactions(ctx context.Context, id uuid.UUID, counts domain.ReactionCounts) error
}

type reactionStore interface {
	Get(ctx context.Context, commentID uuid.UUID, userID string) (*domain.Reaction, error)
	Upsert(ctx context.Context, r domain.Reaction) error
	Delete(ctx context.Context, commentID uuid.UUID, userID string) error
}

type contributorStore interface {
	GetOrCreateForUpdate(ctx context.Context, seed *domain.Contributor) (*domain.Contributor, error)
	Update(ctx context.Context, c *domain.Contributor) error
	GetByName(ctx context.Context, name string) (*domain.Contributor, error)
	GetByNames(ctx context.Context, names []string) ([]*domain.Contributor, error)
	List(ctx context.Context) ([]*domain.Contributor, error)
	Count(ctx context.Context) (int, error)
}

type awardStore interface {
	Append(ctx context.Context, a domain.PointAward) error
	ListByContributor(ctx context.Context, name string, limit int) ([]domain.PointAward, error)
}

type eventStore interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	AddRegistration(ctx context.Context, eventID uuid.UUID, userID string, at time.Time) error
	List(ctx context.Context) ([]*domain.Event, error)
	Count(ctx context.Context) (int, error)
}

type notificationStore interface {
	Append(ctx context.Context, n domain.AdminNotification, keep int) error
	List(ctx context.Context, limit int) ([]domain.AdminNotification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type insightStore interface {
	SaveReport(ctx context.Context, report domain.InsightReport) error
	LatestReport(ctx context.Context) (*domain.InsightReport, error)
	NotifyStateForUpdate(ctx context.Context) (domain.NotifyState, error)
	SaveNotifyState(ctx context.Context, state domain.NotifyState) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// backend is one storage implementation behind the repository interfaces
// the services consume.
type backend struct {
	driver        string
	discussions   discussionStore
	comments      commentStore
	reactions     reactionStore
	contributors  contributorStore
	awards        awardStore
	events        eventStore
	notifications notificationStore
	insights      insightStore
	tx            txManager
	ping          func(ctx context.Context) error
	close         func()
}

// openBackend selects the storage driver from config. Callers must call
// close on the returned backend.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory store")
		return newMemoryBackend(), nil
	case config.DriverPostgres:
		return newPostgresBackend(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newMemoryBackend() *backend {
	store := memory.NewStore()
	return &backend{
		driver:        config.DriverMemory,
		discussions:   store.Discussions(),
		comments:      store.Comments(),
		reactions:     store.Reactions(),
		contributors:  store.Contributors(),
		awards:        store.Awards(),
		events:        store.Events(),
		notifications: store.Notifications(),
		insights:      store.Insights(),
		tx:            memory.NewTxManager(store),
		ping:          store.Ping,
		close:         func() {},
	}
}

func newPostgresBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Storage.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("database migrated", slog.Int("applied", applied))
	}

	logger.Info("connected to database",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
	)

	b := newPostgresRepos(pool)
	b.close = pool.Close
	return b, nil
}

// newPostgresRepos builds the postgres repositories over an open pool.
// The returned backend does not own the pool.
func newPostgresRepos(pool *pgxpool.Pool) *backend {
	return &backend{
		driver:        config.DriverPostgres,
		discussions:   pgdiscussion.New(pool),
		comments:      pgdiscussion.NewCommentRepo(pool),
		reactions:     pgreaction.New(pool),
		contributors:  pgcontributor.New(pool),
		awards:        pgcontributor.NewAwardRepo(pool),
		events:        pgevent.New(pool),
		notifications: pgnotification.New(pool),
		insights:      pgnotification.NewInsightRepo(pool),
		tx:            postgres.NewTxManager(pool),
		ping:          pool.Ping,
		close:         func() {},
	}
}
