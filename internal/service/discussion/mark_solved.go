package discussion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// MarkSolved flags a discussion as solved and awards the solver. Solving an
// already solved discussion changes nothing and awards nothing.
func (s *Service) MarkSolved(ctx context.Context, input MarkSolvedInput) (*domain.Discussion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	solver := domain.NormalizeName(input.Solver)

	var awarded bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, err := s.discussions.GetForUpdate(txCtx, input.DiscussionID)
		if err != nil {
			return fmt.Errorf("get discussion: %w", err)
		}
		if d.Solved {
			return nil
		}

		if err := s.discussions.SetSolved(txCtx, d.ID); err != nil {
			return fmt.Errorf("set solved: %w", err)
		}
		if _, err := s.points.ApplyPoints(txCtx, solver, domain.PointsSolutionProvided, domain.ReasonSolutionProvided); err != nil {
			return fmt.Errorf("award solver: %w", err)
		}
		awarded = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if awarded {
		s.log.InfoContext(ctx, "discussion solved",
			slog.String("discussion_id", input.DiscussionID.String()),
			slog.String("solver", solver),
		)
	}

	return s.GetDiscussion(ctx, input.DiscussionID)
}
