package discussion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// IncrementViews records one view of a discussion and returns the new count.
func (s *Service) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	views, err := s.discussions.IncrementViews(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

// LikeDiscussion adds one like to a discussion and returns the new count.
func (s *Service) LikeDiscussion(ctx context.Context, id uuid.UUID) (int, error) {
	likes, err := s.discussions.IncrementLikes(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("like discussion: %w", err)
	}

	s.log.DebugContext(ctx, "discussion liked",
		slog.String("discussion_id", id.String()),
		slog.Int("likes", likes),
	)
	return likes, nil
}
