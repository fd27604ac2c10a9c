package discussion

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

var commentColumns = []string{
	"id", "discussion_id", "parent_id", "author", "content", "created_at",
	"like_count", "funny_count", "insightful_count", "loved_count",
}

// CommentRepo provides comment persistence backed by PostgreSQL.
type CommentRepo struct {
	pool postgres.Pool
}

// NewCommentRepo creates a new comment repository.
func NewCommentRepo(pool postgres.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

const parentDiscussionSQL = `SELECT discussion_id FROM comments WHERE id = $1`

// Create inserts a comment. A missing discussion, or a parent that is missing
// or belongs to another discussion, yields domain.ErrNotFound.
func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if c.ParentID != nil {
		var parentDiscussion uuid.UUID
		if err := q.QueryRow(ctx, parentDiscussionSQL, *c.ParentID).Scan(&parentDiscussion); err != nil {
			return postgres.MapError(err, "comment", *c.ParentID)
		}
		if parentDiscussion != c.DiscussionID {
			return fmt.Errorf("comment %s in discussion %s: %w", *c.ParentID, c.DiscussionID, domain.ErrNotFound)
		}
	}

	sql, args, err := postgres.Builder.
		Insert("comments").
		Columns(commentColumns...).
		Values(
			c.ID, c.DiscussionID, c.ParentID, c.Author, c.Content, c.CreatedAt,
			c.Reactions.Like, c.Reactions.Funny, c.Reactions.Insightful, c.Reactions.Loved,
		).
		ToSql()
	if err != nil {
		return postgres.StoreError("build comment insert", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "discussion", c.DiscussionID)
	}
	return nil
}

// GetByID returns a comment without replies.
func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return r.getOne(ctx, id, false)
}

// GetForUpdate returns a comment and locks its row until the surrounding
// transaction ends.
func (r *CommentRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return r.getOne(ctx, id, true)
}

func (r *CommentRepo) getOne(ctx context.Context, id uuid.UUID, lock bool) (*domain.Comment, error) {
	query := postgres.Builder.
		Select(commentColumns...).
		From("comments").
		Where("id = ?", id)
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build comment query", err)
	}

	c, err := scanComment(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

// UpdateReactions overwrites the reaction counters of a comment.
func (r *CommentRepo) UpdateReactions(ctx context.Context, id uuid.UUID, counts domain.ReactionCounts) error {
	sql, args, err := postgres.Builder.
		Update("comments").
		Set("like_count", counts.Like).
		Set("funny_count", counts.Funny).
		Set("insightful_count", counts.Insightful).
		Set("loved_count", counts.Loved).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return postgres.StoreError("build reaction counters update", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// listComments returns the flat comment list of a discussion in posting order.
func listComments(ctx context.Context, q postgres.Querier, discussionID uuid.UUID) ([]domain.Comment, error) {
	sql, args, err := postgres.Builder.
		Select(commentColumns...).
		From("comments").
		Where("discussion_id = ?", discussionID).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, postgres.StoreError("build comment list", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("list comments", err)
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, postgres.StoreError("scan comment", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("list comments", err)
	}
	return out, nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID, &c.DiscussionID, &c.ParentID, &c.Author, &c.Content, &c.CreatedAt,
		&c.Reactions.Like, &c.Reactions.Funny, &c.Reactions.Insightful, &c.Reactions.Loved,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
