// Package contributor implements the contributor profile repository and
// the points ledger using PostgreSQL.
package contributor

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

var columns = []string{
	"name", "avatar_initials", "points",
	"discussions_started", "comments_posted", "solutions_provided", "join_date",
}

// Repo provides contributor persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Pool
}

// New creates a new contributor repository.
func New(pool postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByName returns a profile by its name.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Contributor, error) {
	return r.getOne(ctx, name, false)
}

func (r *Repo) getOne(ctx context.Context, name string, lock bool) (*domain.Contributor, error) {
	query := postgres.Builder.Select(columns...).From("contributors").Where(sq.Eq{"name": name})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build contributor query", err)
	}

	c, err := scanContributor(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "contributor", name)
	}
	return c, nil
}

// GetByNames returns the profiles that exist among names, in no particular order.
func (r *Repo) GetByNames(ctx context.Context, names []string) ([]*domain.Contributor, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.list(ctx, postgres.Builder.Select(columns...).From("contributors").Where(sq.Eq{"name": names}))
}

// List returns every profile in creation order.
func (r *Repo) List(ctx context.Context) ([]*domain.Contributor, error) {
	return r.list(ctx, postgres.Builder.Select(columns...).From("contributors").OrderBy("seq"))
}

func (r *Repo) list(ctx context.Context, query sq.SelectBuilder) ([]*domain.Contributor, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build contributor list", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("list contributors", err)
	}
	defer rows.Close()

	var out []*domain.Contributor
	for rows.Next() {
		c, err := scanContributor(rows)
		if err != nil {
			return nil, postgres.StoreError("scan contributor", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("list contributors", err)
	}
	return out, nil
}

// Count returns the number of profiles.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT count(*) FROM contributors`).
		Scan(&n)
	if err != nil {
		return 0, postgres.StoreError("count contributors", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a profile.
func (r *Repo) Create(ctx context.Context, c *domain.Contributor) error {
	sql, args, err := insert(c).ToSql()
	if err != nil {
		return postgres.StoreError("build contributor insert", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "contributor", c.Name)
	}
	return nil
}

// GetOrCreateForUpdate inserts seed unless a profile with its name exists,
// then returns the stored profile with its row locked.
func (r *Repo) GetOrCreateForUpdate(ctx context.Context, seed *domain.Contributor) (*domain.Contributor, error) {
	sql, args, err := insert(seed).Suffix("ON CONFLICT (name) DO NOTHING").ToSql()
	if err != nil {
		return nil, postgres.StoreError("build contributor insert", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return nil, postgres.MapError(err, "contributor", seed.Name)
	}
	return r.getOne(ctx, seed.Name, true)
}

// Update overwrites the mutable fields of a profile.
func (r *Repo) Update(ctx context.Context, c *domain.Contributor) error {
	sql, args, err := postgres.Builder.
		Update("contributors").
		Set("avatar_initials", c.AvatarInitials).
		Set("points", c.Points).
		Set("discussions_started", c.DiscussionsStarted).
		Set("comments_posted", c.CommentsPosted).
		Set("solutions_provided", c.SolutionsProvided).
		Where(sq.Eq{"name": c.Name}).
		ToSql()
	if err != nil {
		return postgres.StoreError("build contributor update", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "contributor", c.Name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contributor %q: %w", c.Name, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func insert(c *domain.Contributor) sq.InsertBuilder {
	return postgres.Builder.
		Insert("contributors").
		Columns(columns...).
		Values(c.Name, c.AvatarInitials, c.Points, c.DiscussionsStarted, c.CommentsPosted, c.SolutionsProvided, c.JoinDate)
}

func scanContributor(row pgx.Row) (*domain.Contributor, error) {
	var c domain.Contributor
	err := row.Scan(
		&c.Name, &c.AvatarInitials, &c.Points,
		&c.DiscussionsStarted, &c.CommentsPosted, &c.SolutionsProvided, &c.JoinDate,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
