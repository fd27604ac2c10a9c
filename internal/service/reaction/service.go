package reaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/metrics"
)

type commentRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateReactions(ctx context.Context, id uuid.UUID, counts domain.ReactionCounts) error
}

type reactionRepo interface {
	Get(ctx context.Context, commentID uuid.UUID, userID string) (*domain.Reaction, error)
	Upsert(ctx context.Context, r domain.Reaction) error
	Delete(ctx context.Context, commentID uuid.UUID, userID string) error
}

type pointAwarder interface {
	ApplyPoints(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the reaction ledger: one active reaction per user and comment.
type Service struct {
	comments  commentRepo
	reactions reactionRepo
	points    pointAwarder
	tx        txManager
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewService creates a new Reaction service. m may be nil.
func NewService(
	log *slog.Logger,
	comments commentRepo,
	reactions reactionRepo,
	points pointAwarder,
	tx txManager,
	m *metrics.Metrics,
) *Service {
	return &Service{
		comments:  comments,
		reactions: reactions,
		points:    points,
		tx:        tx,
		metrics:   m,
		log:       log.With("service", "reaction"),
	}
}

// ReactInput holds the parameters of a reaction toggle.
type ReactInput struct {
	CommentID uuid.UUID
	UserID    string
	Type      domain.ReactionType
}

// Validate checks all fields and collects all errors.
func (i ReactInput) Validate() error {
	var errs []domain.FieldError

	if i.CommentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "comment_id", Message: "required"})
	}
	if i.UserID == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "reaction_type", Message: "must be like, funny, insightful or loved"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
