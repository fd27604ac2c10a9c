// Package discussion implements the discussion and comment repositories
// using PostgreSQL.
package discussion

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

var discussionColumns = []string{
	"d.id", "d.title", "d.author", "d.category", "d.content",
	"d.created_at", "d.solved", "d.views", "d.like_count",
	"(SELECT count(*) FROM comments c WHERE c.discussion_id = d.id AND c.parent_id IS NULL) AS reply_count",
}

// Repo provides discussion persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Pool
}

// New creates a new discussion repository.
func New(pool postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a discussion with its full comment tree.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	d, err := r.getOne(ctx, id, false)
	if err != nil {
		return nil, err
	}

	comments, err := listComments(ctx, postgres.QuerierFromCtx(ctx, r.pool), id)
	if err != nil {
		return nil, err
	}
	d.Comments = domain.BuildCommentTree(comments)
	return d, nil
}

// GetForUpdate returns a discussion without comments and locks its row
// until the surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	return r.getOne(ctx, id, true)
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, lock bool) (*domain.Discussion, error) {
	query := postgres.Builder.
		Select(discussionColumns...).
		From("discussions d").
		Where("d.id = ?", id)
	if lock {
		query = query.Suffix("FOR UPDATE OF d")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build discussion query", err)
	}

	d, err := scanDiscussion(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "discussion", id)
	}
	return d, nil
}

// List returns discussions matching filter in insertion order, without
// comments. Search is a case-insensitive substring match over title,
// author and category.
func (r *Repo) List(ctx context.Context, filter domain.DiscussionFilter) ([]*domain.Discussion, error) {
	query := postgres.Builder.
		Select(discussionColumns...).
		From("discussions d").
		OrderBy("d.seq")

	if filter.Category != "" && filter.Category != domain.CategoryAll {
		query = query.Where(sq.Eq{"d.category": string(filter.Category)})
	}
	if needle := strings.TrimSpace(filter.SearchText); needle != "" {
		pattern := "%" + escapeLike(needle) + "%"
		query = query.Where(sq.Or{
			sq.ILike{"d.title": pattern},
			sq.ILike{"d.author": pattern},
			sq.ILike{"d.category": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build discussion list", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("list discussions", err)
	}
	defer rows.Close()

	var out []*domain.Discussion
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, postgres.StoreError("scan discussion", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("list discussions", err)
	}
	return out, nil
}

// Count returns the number of stored discussions.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT count(*) FROM discussions`).
		Scan(&n)
	if err != nil {
		return 0, postgres.StoreError("count discussions", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new discussion.
func (r *Repo) Create(ctx context.Context, d *domain.Discussion) error {
	sql, args, err := postgres.Builder.
		Insert("discussions").
		Columns("id", "title", "author", "category", "content", "created_at", "solved", "views", "like_count").
		Values(d.ID, d.Title, d.Author, string(d.Category), d.Content, d.CreatedAt, d.Solved, d.Views, d.LikeCount).
		ToSql()
	if err != nil {
		return postgres.StoreError("build discussion insert", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "discussion", d.ID)
	}
	return nil
}

const (
	incrementViewsSQL = `UPDATE discussions SET views = views + 1 WHERE id = $1 RETURNING views`
	incrementLikesSQL = `UPDATE discussions SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count`
	setSolvedSQL      = `UPDATE discussions SET solved = true WHERE id = $1`
)

// IncrementViews adds one view and returns the new count.
func (r *Repo) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	return r.increment(ctx, incrementViewsSQL, id)
}

// IncrementLikes adds one like and returns the new count.
func (r *Repo) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	return r.increment(ctx, incrementLikesSQL, id)
}

func (r *Repo) increment(ctx context.Context, sql string, id uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, id).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "discussion", id)
	}
	return n, nil
}

// SetSolved marks the discussion solved.
func (r *Repo) SetSolved(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, setSolvedSQL, id)
	if err != nil {
		return postgres.MapError(err, "discussion", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("discussion %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanDiscussion(row pgx.Row) (*domain.Discussion, error) {
	var (
		d        domain.Discussion
		category string
	)
	err := row.Scan(
		&d.ID, &d.Title, &d.Author, &category, &d.Content,
		&d.CreatedAt, &d.Solved, &d.Views, &d.LikeCount, &d.ReplyCount,
	)
	if err != nil {
		return nil, err
	}
	d.Category = domain.Category(category)
	return &d, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
