package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// CommentRepo stores comments of all discussions.
type CommentRepo struct {
	s *Store
}

// Comments returns the comment repository of the store.
func (s *Store) Comments() *CommentRepo { return &CommentRepo{s: s} }

// Create appends a comment to its discussion thread.
func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return r.s.write(ctx, func(t *txn) error {
		if _, ok := r.s.discussionIndex[c.DiscussionID]; !ok {
			return fmt.Errorf("discussion %s: %w", c.DiscussionID, domain.ErrNotFound)
		}
		if c.ParentID != nil {
			parent, ok := r.s.comments[*c.ParentID]
			if !ok || parent.DiscussionID != c.DiscussionID {
				return fmt.Errorf("comment %s: %w", *c.ParentID, domain.ErrNotFound)
			}
		}
		if _, ok := r.s.comments[c.ID]; ok {
			return fmt.Errorf("comment %s: %w", c.ID, domain.ErrAlreadyExists)
		}

		row := *c
		row.Replies = nil
		r.s.comments[row.ID] = &row
		r.s.threadComments[row.DiscussionID] = append(r.s.threadComments[row.DiscussionID], row.ID)

		t.onRollback(func() {
			ids := r.s.threadComments[row.DiscussionID]
			r.s.threadComments[row.DiscussionID] = ids[:len(ids)-1]
			delete(r.s.comments, row.ID)
		})
		return nil
	})
}

// GetByID returns a comment without its replies.
func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var out *domain.Comment
	err := r.s.read(ctx, func() error {
		row, ok := r.s.comments[id]
		if !ok {
			return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		c := *row
		out = &c
		return nil
	})
	return out, err
}

// GetForUpdate returns a comment for a read-then-write sequence.
func (r *CommentRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return r.GetByID(ctx, id)
}

// UpdateReactions replaces the reaction counters of a comment.
func (r *CommentRepo) UpdateReactions(ctx context.Context, id uuid.UUID, counts domain.ReactionCounts) error {
	return r.s.write(ctx, func(t *txn) error {
		row, ok := r.s.comments[id]
		if !ok {
			return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		prev := row.Reactions
		row.Reactions = counts
		t.onRollback(func() { row.Reactions = prev })
		return nil
	})
}
