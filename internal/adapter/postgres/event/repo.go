// Package event implements the event and registration repository using PostgreSQL.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

var columns = []string{
	"id", "title", "date", "description", "max_users", "registered_users", "created_at",
}

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Pool
}

// New creates a new event repository.
func New(pool postgres.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an event with its registrants.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.getOne(ctx, id, false)
}

// GetForUpdate returns an event with its registrants and locks the event row
// until the surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.getOne(ctx, id, true)
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, lock bool) (*domain.Event, error) {
	query := postgres.Builder.Select(columns...).From("events").Where("id = ?", id)
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build event query", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	e, err := scanEvent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	regs, err := registrants(ctx, q, &id)
	if err != nil {
		return nil, err
	}
	e.Registrants = regs[id]
	return e, nil
}

// List returns every event in creation order with registrants.
func (r *Repo) List(ctx context.Context) ([]*domain.Event, error) {
	sql, args, err := postgres.Builder.Select(columns...).From("events").OrderBy("seq").ToSql()
	if err != nil {
		return nil, postgres.StoreError("build event list", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("list events", err)
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, postgres.StoreError("scan event", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("list events", err)
	}
	rows.Close()

	regs, err := registrants(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range out {
		e.Registrants = regs[e.ID]
	}
	return out, nil
}

// Count returns the number of events.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT count(*) FROM events`).
		Scan(&n)
	if err != nil {
		return 0, postgres.StoreError("count events", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an event.
func (r *Repo) Create(ctx context.Context, e *domain.Event) error {
	sql, args, err := postgres.Builder.
		Insert("events").
		Columns(columns...).
		Values(e.ID, e.Title, e.Date, e.Description, e.MaxUsers, e.RegisteredUsers, e.CreatedAt).
		ToSql()
	if err != nil {
		return postgres.StoreError("build event insert", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "event", e.ID)
	}
	return nil
}

// addRegistrationSQL takes a seat and records the registrant in one
// statement. The events_capacity check rejects a seat beyond max_users and
// the primary key rejects a second registration of the same user; either
// failure aborts both changes.
const addRegistrationSQL = `
WITH seat AS (
    UPDATE events SET registered_users = registered_users + 1
    WHERE id = $1
    RETURNING id
)
INSERT INTO event_registrations (event_id, user_id, registered_at)
SELECT id, $2, $3 FROM seat`

// AddRegistration takes one seat of the event for userID. It returns
// domain.ErrAlreadyExists for a repeated registration and domain.ErrConflict
// when the event is full.
func (r *Repo) AddRegistration(ctx context.Context, eventID uuid.UUID, userID string, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, addRegistrationSQL, eventID, userID, at)
	if err != nil {
		return postgres.MapError(err, "event", eventID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// registrants returns user ids per event in registration order, for one
// event when eventID is set.
func registrants(ctx context.Context, q postgres.Querier, eventID *uuid.UUID) (map[uuid.UUID][]string, error) {
	query := postgres.Builder.
		Select("event_id", "user_id").
		From("event_registrations").
		OrderBy("registered_at", "user_id")
	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.StoreError("build registrant list", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.StoreError("list registrants", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]string)
	for rows.Next() {
		var (
			id   uuid.UUID
			user string
		)
		if err := rows.Scan(&id, &user); err != nil {
			return nil, postgres.StoreError("scan registrant", err)
		}
		out[id] = append(out[id], user)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("list registrants", err)
	}
	return out, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.Description, &e.MaxUsers, &e.RegisteredUsers, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
