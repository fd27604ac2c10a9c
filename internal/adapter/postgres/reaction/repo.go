// Package reaction implements the reaction record repository using PostgreSQL.
package reaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

// Repo stores at most one reaction per (comment, user).
type Repo struct {
	pool postgres.Pool
}

// New creates a new reaction repository.
func New(pool postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	getReactionSQL = `
SELECT comment_id, user_id, reaction_type, created_at
FROM reactions
WHERE comment_id = $1 AND user_id = $2`

	upsertReactionSQL = `
INSERT INTO reactions (comment_id, user_id, reaction_type, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (comment_id, user_id)
DO UPDATE SET reaction_type = EXCLUDED.reaction_type, created_at = EXCLUDED.created_at`

	deleteReactionSQL = `DELETE FROM reactions WHERE comment_id = $1 AND user_id = $2`
)

// Get returns the active reaction of userID on a comment.
func (r *Repo) Get(ctx context.Context, commentID uuid.UUID, userID string) (*domain.Reaction, error) {
	var (
		rec domain.Reaction
		rt  string
	)
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, getReactionSQL, commentID, userID).
		Scan(&rec.CommentID, &rec.UserID, &rt, &rec.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "reaction", key(commentID, userID))
	}
	rec.Type = domain.ReactionType(rt)
	return &rec, nil
}

// Upsert records rec as the active reaction, replacing any previous type.
func (r *Repo) Upsert(ctx context.Context, rec domain.Reaction) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, upsertReactionSQL,
		rec.CommentID, rec.UserID, string(rec.Type), rec.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "comment", rec.CommentID)
	}
	return nil
}

// Delete removes the reaction of userID on a comment.
func (r *Repo) Delete(ctx context.Context, commentID uuid.UUID, userID string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteReactionSQL, commentID, userID)
	if err != nil {
		return postgres.MapError(err, "reaction", key(commentID, userID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reaction %s: %w", key(commentID, userID), domain.ErrNotFound)
	}
	return nil
}

func key(commentID uuid.UUID, userID string) string {
	return commentID.String() + "/" + userID
}
