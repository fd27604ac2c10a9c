// Package notification implements the admin notification log and the
// insight report state using PostgreSQL.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

// Repo is the bounded admin notification log.
type Repo struct {
	pool postgres.Pool
}

// New creates a new notification repository.
func New(pool postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	insertNotificationSQL = `
INSERT INTO admin_notifications (id, type, title, message, created_at, read)
VALUES ($1, $2, $3, $4, $5, $6)`

	// trimNotificationsSQL keeps the newest $1 entries.
	trimNotificationsSQL = `
DELETE FROM admin_notifications
WHERE seq <= (SELECT seq FROM admin_notifications ORDER BY seq DESC OFFSET $1 LIMIT 1)`

	markReadSQL = `UPDATE admin_notifications SET read = true WHERE id = $1`
)

// Append adds n and drops the oldest entries beyond keep. Callers run it
// inside a transaction so the insert and the trim commit together.
func (r *Repo) Append(ctx context.Context, n domain.AdminNotification, keep int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, insertNotificationSQL, n.ID, string(n.Type), n.Title, n.Message, n.Timestamp, n.Read)
	if err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}

	if keep > 0 {
		if _, err := q.Exec(ctx, trimNotificationsSQL, keep); err != nil {
			return postgres.StoreError("trim notifications", err)
		}
	}
	return nil
}

// List returns up to limit notifications, newest first. limit <= 0 returns all.
func (r *Repo) List(ctx context.Context, limit int) ([]domain.AdminNotification, error) {
	query := postgres.Builder.
		Select("id", "type", "title", "message", "created_at", "read").
		From("admin_notifications").
		OrderBy("seq DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build notification list", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("list notifications", err)
	}
	defer rows.Close()

	var out []domain.AdminNotification
	for rows.Next() {
		var (
			n   domain.AdminNotification
			typ string
		)
		if err := rows.Scan(&n.ID, &typ, &n.Title, &n.Message, &n.Timestamp, &n.Read); err != nil {
			return nil, postgres.StoreError("scan notification", err)
		}
		n.Type = domain.NotificationType(typ)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("list notifications", err)
	}
	return out, nil
}

// MarkRead sets the read flag of a notification.
func (r *Repo) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, markReadSQL, id)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
