package reaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// React toggles the user's reaction on a comment:
//   - no reaction yet: add it and award the comment author;
//   - same type again: remove it (points already awarded stay);
//   - another type: switch to it and award the author for the new type.
//
// The comment is locked for the whole read-then-write sequence.
func (s *Service) React(ctx context.Context, input ReactInput) (*domain.ReactionResult, error) {
	input.UserID = domain.NormalizeName(input.UserID)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.ReactionResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.comments.GetForUpdate(txCtx, input.CommentID)
		if err != nil {
			return fmt.Errorf("get comment: %w", err)
		}

		existing, err := s.reactions.Get(txCtx, input.CommentID, input.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get reaction: %w", err)
		}

		result = &domain.ReactionResult{}
		counts := c.Reactions

		switch {
		case existing != nil && existing.Type == input.Type:
			counts.Add(input.Type, -1)
			if err := s.reactions.Delete(txCtx, input.CommentID, input.UserID); err != nil {
				return fmt.Errorf("delete reaction: %w", err)
			}
			result.Previous = &existing.Type
			result.Delta = domain.ReactionDelta{Type: input.Type, Direction: domain.ReactionRemoved}
			result.Deltas = []domain.ReactionDelta{result.Delta}

		default:
			if existing != nil {
				counts.Add(existing.Type, -1)
				result.Previous = &existing.Type
				result.Deltas = append(result.Deltas, domain.ReactionDelta{Type: existing.Type, Direction: domain.ReactionRemoved})
			}
			counts.Add(input.Type, 1)
			if err := s.reactions.Upsert(txCtx, domain.Reaction{
				CommentID: input.CommentID,
				UserID:    input.UserID,
				Type:      input.Type,
				CreatedAt: time.Now().UTC(),
			}); err != nil {
				return fmt.Errorf("upsert reaction: %w", err)
			}
			if _, err := s.points.ApplyPoints(txCtx, c.Author, input.Type.Points(), domain.ReasonReactionReceived); err != nil {
				return fmt.Errorf("award comment author: %w", err)
			}
			result.Applied = true
			result.Delta = domain.ReactionDelta{Type: input.Type, Direction: domain.ReactionAdded}
			result.Deltas = append(result.Deltas, result.Delta)
		}

		if err := s.comments.UpdateReactions(txCtx, input.CommentID, counts); err != nil {
			return fmt.Errorf("update counters: %w", err)
		}

		c.Reactions = counts
		result.Comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, d := range result.Deltas {
		s.metrics.ObserveReaction(d.Type.String(), string(d.Direction))
	}
	s.log.InfoContext(ctx, "reaction toggled",
		slog.String("comment_id", input.CommentID.String()),
		slog.String("user_id", input.UserID),
		slog.String("reaction", input.Type.String()),
		slog.Bool("applied", result.Applied),
	)

	return result, nil
}

// UserReaction returns the active reaction type of userID on a comment, or nil.
func (s *Service) UserReaction(ctx context.Context, commentID uuid.UUID, userID string) (*domain.ReactionType, error) {
	r, err := s.reactions.Get(ctx, commentID, domain.NormalizeName(userID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reaction: %w", err)
	}
	return &r.Type, nil
}
