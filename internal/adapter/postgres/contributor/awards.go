package contributor

import (
	"context"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

// AwardRepo is the append-only points ledger.
type AwardRepo struct {
	pool postgres.Pool
}

// NewAwardRepo creates a new points ledger repository.
func NewAwardRepo(pool postgres.Pool) *AwardRepo {
	return &AwardRepo{pool: pool}
}

const insertAwardSQL = `
INSERT INTO point_awards (id, contributor, amount, reason, created_at)
VALUES ($1, $2, $3, $4, $5)`

// Append records an award. The contributor must exist.
func (r *AwardRepo) Append(ctx context.Context, a domain.PointAward) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertAwardSQL,
		a.ID, a.Contributor, a.Amount, string(a.Reason), a.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "contributor", a.Contributor)
	}
	return nil
}

// ListByContributor returns up to limit awards of name, newest first.
// limit <= 0 returns all of them.
func (r *AwardRepo) ListByContributor(ctx context.Context, name string, limit int) ([]domain.PointAward, error) {
	query := postgres.Builder.
		Select("id", "contributor", "amount", "reason", "created_at").
		From("point_awards").
		Where("contributor = ?", name).
		OrderBy("seq DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build award list", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("list awards", err)
	}
	defer rows.Close()

	var out []domain.PointAward
	for rows.Next() {
		var (
			a      domain.PointAward
			reason string
		)
		if err := rows.Scan(&a.ID, &a.Contributor, &a.Amount, &reason, &a.CreatedAt); err != nil {
			return nil, postgres.StoreError("scan award", err)
		}
		a.Reason = domain.AwardReason(reason)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("list awards", err)
	}
	return out, nil
}
