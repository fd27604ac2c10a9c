package discussion

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// ListDiscussions returns discussions matching filter. The default order is
// insertion order; "recent" and "popular" sort stably on top of it.
func (s *Service) ListDiscussions(ctx context.Context, filter domain.DiscussionFilter) ([]*domain.Discussion, error) {
	if !filter.Sort.IsValid() {
		return nil, domain.NewValidationError("sort", "must be recent or popular")
	}

	list, err := s.discussions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}

	switch filter.Sort {
	case domain.SortRecent:
		slices.SortStableFunc(list, func(a, b *domain.Discussion) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case domain.SortPopular:
		slices.SortStableFunc(list, func(a, b *domain.Discussion) int {
			return cmp.Compare(b.Popularity(), a.Popularity())
		})
	}

	return list, nil
}

// GetDiscussion returns a discussion with its full comment tree.
func (s *Service) GetDiscussion(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	d, err := s.discussions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get discussion: %w", err)
	}
	return d, nil
}
