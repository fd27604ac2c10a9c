package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/community-engine/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/community-engine/internal/domain"
)

func TestRepo_AddRegistration_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(mock pgxmock.PgxPoolIface)
		want  error
	}{
		{
			name: "full",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`WITH seat AS`).
					WithArgs(pgxmock.AnyArg(), "ann", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "events_capacity"})
			},
			want: domain.ErrConflict,
		},
		{
			name: "duplicate",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`WITH seat AS`).
					WithArgs(pgxmock.AnyArg(), "ann", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			want: domain.ErrAlreadyExists,
		},
		{
			name: "missing event",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`WITH seat AS`).
					WithArgs(pgxmock.AnyArg(), "ann", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			want: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setup(mock)

			err = New(mock).AddRegistration(context.Background(), uuid.New(), "ann", time.Now())
			require.ErrorIs(t, err, tt.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIntegration_RegistrationsNeverExceedCapacity(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := New(pool)

	const seats, users = 3, 20
	e := testhelper.SeedEvent(t, pool, seats)

	var ok, full atomic.Int32
	var g errgroup.Group
	for i := range users {
		g.Go(func() error {
			err := repo.AddRegistration(ctx, e.ID, fmt.Sprintf("user-%d", i), time.Now())
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrConflict):
				full.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, seats, ok.Load())
	assert.EqualValues(t, users-seats, full.Load())

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, seats, got.RegisteredUsers)
	assert.Len(t, got.Registrants, seats)
}

func TestIntegration_DuplicateRegistration(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := New(pool)
	e := testhelper.SeedEvent(t, pool, 5)

	require.NoError(t, repo.AddRegistration(ctx, e.ID, "ann", time.Now()))
	err := repo.AddRegistration(ctx, e.ID, "ann", time.Now())
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := repo.GetForUpdate(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RegisteredUsers)
	assert.Equal(t, []string{"ann"}, got.Registrants)
}

func TestIntegration_CreateAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := New(pool)

	e := &domain.Event{
		ID:          uuid.New(),
		Title:       testhelper.UniqueName("Workshop"),
		Date:        time.Now().UTC().Add(48 * time.Hour).Truncate(time.Microsecond),
		Description: "hands-on",
		MaxUsers:    10,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, e))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, e.ID, list[len(list)-1].ID)
	assert.Equal(t, 10, list[len(list)-1].MaxUsers)
}
