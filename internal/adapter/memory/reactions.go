package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// ReactionRepo keeps the single active reaction per (comment, user).
type ReactionRepo struct {
	s *Store
}

// Reactions returns the reaction repository of the store.
func (s *Store) Reactions() *ReactionRepo { return &ReactionRepo{s: s} }

// Get returns the active reaction of userID on commentID.
func (r *ReactionRepo) Get(ctx context.Context, commentID uuid.UUID, userID string) (*domain.Reaction, error) {
	var out *domain.Reaction
	err := r.s.read(ctx, func() error {
		rec, ok := r.s.reactions[reactionKey{commentID, userID}]
		if !ok {
			return fmt.Errorf("reaction %s/%s: %w", commentID, userID, domain.ErrNotFound)
		}
		out = &rec
		return nil
	})
	return out, err
}

// Upsert stores rec, replacing any previous reaction of the same user.
func (r *ReactionRepo) Upsert(ctx context.Context, rec domain.Reaction) error {
	return r.s.write(ctx, func(t *txn) error {
		if _, ok := r.s.comments[rec.CommentID]; !ok {
			return fmt.Errorf("comment %s: %w", rec.CommentID, domain.ErrNotFound)
		}
		key := reactionKey{rec.CommentID, rec.UserID}
		prev, existed := r.s.reactions[key]
		r.s.reactions[key] = rec
		t.onRollback(func() {
			if existed {
				r.s.reactions[key] = prev
			} else {
				delete(r.s.reactions, key)
			}
		})
		return nil
	})
}

// Delete removes the reaction of userID on commentID.
func (r *ReactionRepo) Delete(ctx context.Context, commentID uuid.UUID, userID string) error {
	return r.s.write(ctx, func(t *txn) error {
		key := reactionKey{commentID, userID}
		prev, ok := r.s.reactions[key]
		if !ok {
			return fmt.Errorf("reaction %s/%s: %w", commentID, userID, domain.ErrNotFound)
		}
		delete(r.s.reactions, key)
		t.onRollback(func() { r.s.reactions[key] = prev })
		return nil
	})
}
