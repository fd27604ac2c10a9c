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

// AddComment appends a comment or a nested reply to a discussion and awards
// its author. Insights are re-mined when the discussion is Technical.
func (s *Service) AddComment(ctx context.Context, input AddCommentInput) (*domain.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:           uuid.New(),
		DiscussionID: input.DiscussionID,
		ParentID:     input.ParentID,
		Author:       authorOrAnonymous(domain.NormalizeName(input.Author)),
		Content:      strings.TrimSpace(input.Content),
		CreatedAt:    time.Now().UTC(),
	}

	var category domain.Category
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, err := s.discussions.GetForUpdate(txCtx, input.DiscussionID)
		if err != nil {
			return fmt.Errorf("get discussion: %w", err)
		}
		category = d.Category

		if input.ParentID != nil {
			parent, err := s.comments.GetByID(txCtx, *input.ParentID)
			if err != nil {
				return fmt.Errorf("get parent comment: %w", err)
			}
			if parent.DiscussionID != d.ID {
				return fmt.Errorf("parent comment %s: %w", parent.ID, domain.ErrNotFound)
			}
		}

		if err := s.comments.Create(txCtx, c); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		if _, err := s.points.ApplyPoints(txCtx, c.Author, domain.PointsCommentPosted, domain.ReasonCommentPosted); err != nil {
			return fmt.Errorf("award author: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "comment added",
		slog.String("discussion_id", c.DiscussionID.String()),
		slog.String("comment_id", c.ID.String()),
		slog.String("author", c.Author),
		slog.Bool("reply", c.ParentID != nil),
	)

	if category == domain.CategoryTechnical {
		s.refreshInsights(ctx)
	}

	return c, nil
}
