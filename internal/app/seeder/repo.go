// Package seeder fills empty collections with demo community data at startup.
package seeder

import (
	"context"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// ContributorSource counts profiles and grants opening balances.
// Balances go through the scoreboard so every point has a ledger entry.
type ContributorSource interface {
	Count(ctx context.Context) (int, error)
}

// PointAwarder is implemented by the scoreboard service.
type PointAwarder interface {
	ApplyPoints(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error)
}

// DiscussionStore is the subset of the discussion repository the seeder writes to.
type DiscussionStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, d *domain.Discussion) error
}

// CommentStore is the subset of the comment repository the seeder writes to.
type CommentStore interface {
	Create(ctx context.Context, c *domain.Comment) error
}

// EventStore is the subset of the event repository the seeder writes to.
type EventStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, e *domain.Event) error
}

// Stores groups the seeder dependencies.
type Stores struct {
	Contributors ContributorSource
	Points       PointAwarder
	Discussions  DiscussionStore
	Comments     CommentStore
	Events       EventStore
}

// TxManager runs a phase atomically.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
