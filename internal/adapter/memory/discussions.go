package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// DiscussionRepo stores discussions in insertion order.
type DiscussionRepo struct {
	s *Store
}

// Discussions returns the discussion repository of the store.
func (s *Store) Discussions() *DiscussionRepo { return &DiscussionRepo{s: s} }

// Create appends a discussion.
func (r *DiscussionRepo) Create(ctx context.Context, d *domain.Discussion) error {
	return r.s.write(ctx, func(t *txn) error {
		if _, ok := r.s.discussionIndex[d.ID]; ok {
			return fmt.Errorf("discussion %s: %w", d.ID, domain.ErrAlreadyExists)
		}

		row := *d
		row.Comments = nil
		row.ReplyCount = 0
		r.s.discussions = append(r.s.discussions, &row)
		r.s.discussionIndex[row.ID] = &row

		t.onRollback(func() {
			r.s.discussions = r.s.discussions[:len(r.s.discussions)-1]
			delete(r.s.discussionIndex, row.ID)
		})
		return nil
	})
}

// GetByID returns a discussion with its full comment tree.
func (r *DiscussionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	var out *domain.Discussion
	err := r.s.read(ctx, func() error {
		row, ok := r.s.discussionIndex[id]
		if !ok {
			return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
		}
		out = r.s.hydrate(row, true)
		return nil
	})
	return out, err
}

// GetForUpdate returns a discussion without comments. Inside a transaction
// the store lock already serializes writers.
func (r *DiscussionRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	var out *domain.Discussion
	err := r.s.read(ctx, func() error {
		row, ok := r.s.discussionIndex[id]
		if !ok {
			return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
		}
		out = r.s.hydrate(row, false)
		return nil
	})
	return out, err
}

// List returns discussions matching filter in insertion order, without comments.
func (r *DiscussionRepo) List(ctx context.Context, filter domain.DiscussionFilter) ([]*domain.Discussion, error) {
	needle := strings.ToLower(strings.TrimSpace(filter.SearchText))
	category := filter.Category
	if category == domain.CategoryAll {
		category = ""
	}

	var out []*domain.Discussion
	err := r.s.read(ctx, func() error {
		for _, row := range r.s.discussions {
			if category != "" && row.Category != category {
				continue
			}
			if needle != "" && !matchesSearch(row, needle) {
				continue
			}
			out = append(out, r.s.hydrate(row, false))
		}
		return nil
	})
	return out, err
}

// Snapshot returns every discussion of the category with full comment trees,
// read under a single lock acquisition. An empty category returns all.
func (r *DiscussionRepo) Snapshot(ctx context.Context, category domain.Category) ([]*domain.Discussion, error) {
	var out []*domain.Discussion
	err := r.s.read(ctx, func() error {
		for _, row := range r.s.discussions {
			if category != "" && row.Category != category {
				continue
			}
			out = append(out, r.s.hydrate(row, true))
		}
		return nil
	})
	return out, err
}

// IncrementViews adds one view and returns the new count.
func (r *DiscussionRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := r.s.write(ctx, func(t *txn) error {
		row, ok := r.s.discussionIndex[id]
		if !ok {
			return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
		}
		row.Views++
		views = row.Views
		t.onRollback(func() { row.Views-- })
		return nil
	})
	return views, err
}

// IncrementLikes adds one like and returns the new count.
func (r *DiscussionRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	var likes int
	err := r.s.write(ctx, func(t *txn) error {
		row, ok := r.s.discussionIndex[id]
		if !ok {
			return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
		}
		row.LikeCount++
		likes = row.LikeCount
		t.onRollback(func() { row.LikeCount-- })
		return nil
	})
	return likes, err
}

// SetSolved marks the discussion solved.
func (r *DiscussionRepo) SetSolved(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(t *txn) error {
		row, ok := r.s.discussionIndex[id]
		if !ok {
			return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
		}
		prev := row.Solved
		row.Solved = true
		t.onRollback(func() { row.Solved = prev })
		return nil
	})
}

// Count returns the number of stored discussions.
func (r *DiscussionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.read(ctx, func() error {
		n = len(r.s.discussions)
		return nil
	})
	return n, err
}

func matchesSearch(d *domain.Discussion, needle string) bool {
	return strings.Contains(strings.ToLower(d.Title), needle) ||
		strings.Contains(strings.ToLower(d.Author), needle) ||
		strings.Contains(strings.ToLower(string(d.Category)), needle)
}

// hydrate copies a stored discussion, computing ReplyCount and optionally
// attaching the comment tree. Callers must hold the lock.
func (s *Store) hydrate(row *domain.Discussion, withComments bool) *domain.Discussion {
	d := *row
	d.Comments = nil

	ids := s.threadComments[row.ID]
	flat := make([]domain.Comment, 0, len(ids))
	for _, id := range ids {
		c := *s.comments[id]
		if c.ParentID == nil {
			d.ReplyCount++
		}
		flat = append(flat, c)
	}
	if withComments {
		d.Comments = domain.BuildCommentTree(flat)
	}
	return &d
}
