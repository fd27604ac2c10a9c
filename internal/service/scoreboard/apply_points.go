package scoreboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// ApplyPoints grants amount points to the contributor called name, creating
// the profile on first use. It joins the caller's transaction when ctx has one,
// so awards commit together with the action that earned them. Any non-empty
// reason is accepted; only the known ones bump an activity counter.
func (s *Service) ApplyPoints(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error) {
	name = domain.NormalizeName(name)
	reason = domain.AwardReason(domain.NormalizeName(string(reason)))

	var errs []domain.FieldError
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if amount < 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must not be negative"})
	}
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	now := time.Now().UTC()

	var profile *domain.Contributor
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.contributors.GetOrCreateForUpdate(txCtx, domain.NewContributor(name, now))
		if err != nil {
			return fmt.Errorf("load contributor: %w", err)
		}

		c.Points += amount
		switch reason {
		case domain.ReasonDiscussionCreated:
			c.DiscussionsStarted++
		case domain.ReasonCommentPosted:
			c.CommentsPosted++
		case domain.ReasonSolutionProvided:
			c.SolutionsProvided++
		}
		s.grade(c)

		if err := s.contributors.Update(txCtx, c); err != nil {
			return fmt.Errorf("update contributor: %w", err)
		}

		if err := s.ledger.Append(txCtx, domain.PointAward{
			ID:          uuid.New(),
			Contributor: name,
			Amount:      amount,
			Reason:      reason,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("append award: %w", err)
		}

		profile = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObservePoints(reason.Label(), amount)
	s.log.InfoContext(ctx, "points applied",
		slog.String("contributor", name),
		slog.Int("amount", amount),
		slog.String("reason", reason.String()),
		slog.Int("points", profile.Points),
		slog.String("badge", profile.Badge.String()),
	)

	return profile, nil
}
