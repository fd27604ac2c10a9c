package scoreboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// Leaderboard returns contributors ordered by points (desc), then join date
// (earliest first), then name. limit <= 0 returns everyone.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*domain.Contributor, error) {
	all, err := s.contributors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contributors: %w", err)
	}

	for _, c := range all {
		s.grade(c)
	}

	slices.SortStableFunc(all, func(a, b *domain.Contributor) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := a.JoinDate.Compare(b.JoinDate); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// GetContributor returns one profile with its badge.
func (s *Service) GetContributor(ctx context.Context, name string) (*domain.Contributor, error) {
	name = domain.NormalizeName(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	c, err := s.contributors.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get contributor: %w", err)
	}
	return s.grade(c), nil
}

// History returns the latest point awards of a contributor, newest first.
func (s *Service) History(ctx context.Context, name string, limit int) ([]domain.PointAward, error) {
	if _, err := s.GetContributor(ctx, name); err != nil {
		return nil, err
	}

	awards, err := s.ledger.ListByContributor(ctx, domain.NormalizeName(name), limit)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return awards, nil
}
