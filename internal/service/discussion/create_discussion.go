package discussion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// CreateDiscussion stores a new discussion, awards its author and re-mines insights.
func (s *Service) CreateDiscussion(ctx context.Context, input CreateDiscussionInput) (*domain.Discussion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	d := &domain.Discussion{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		Author:    authorOrAnonymous(domain.NormalizeName(input.Author)),
		Category:  input.Category,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: time.Now().UTC(),
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.discussions.Create(txCtx, d); err != nil {
			return fmt.Errorf("create discussion: %w", err)
		}
		if _, err := s.points.ApplyPoints(txCtx, d.Author, domain.PointsDiscussionCreated, domain.ReasonDiscussionCreated); err != nil {
			return fmt.Errorf("award author: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "discussion created",
		slog.String("discussion_id", d.ID.String()),
		slog.String("author", d.Author),
		slog.String("category", d.Category.String()),
	)

	s.refreshInsights(ctx)

	return d, nil
}
