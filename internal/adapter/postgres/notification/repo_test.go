package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-engine/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/community-engine/internal/domain"
)

func TestRepo_Append_TrimsBeyondKeep(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO admin_notifications`).
		WithArgs(pgxmock.AnyArg(), "technical_issue", "High Activity: API Issues", "msg", pgxmock.AnyArg(), false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM admin_notifications`).
		WithArgs(50).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = New(mock).Append(context.Background(), domain.AdminNotification{
		ID:        uuid.New(),
		Type:      domain.NotificationTechnicalIssue,
		Title:     "High Activity: API Issues",
		Message:   "msg",
		Timestamp: time.Now(),
	}, 50)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsightRepo_LatestReport_NoneYet(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT issues, generated_at FROM insight_state`).
		WillReturnRows(pgxmock.NewRows([]string{"issues", "generated_at"}).AddRow(nil, nil))

	_, err = NewInsightRepo(mock).LatestReport(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegration_NotificationLogAndInsightState(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := New(pool)
	insights := NewInsightRepo(pool)

	var ids []uuid.UUID
	for i := range 4 {
		n := domain.AdminNotification{
			ID:        uuid.New(),
			Type:      domain.NotificationTechnicalIssue,
			Title:     "High Activity: Error Reports",
			Message:   "message",
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		ids = append(ids, n.ID)
		require.NoError(t, repo.Append(ctx, n, 3))
	}

	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{ids[3], ids[2], ids[1]}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})

	require.NoError(t, repo.MarkRead(ctx, ids[2]))
	require.ErrorIs(t, repo.MarkRead(ctx, ids[0]), domain.ErrNotFound)

	report := domain.InsightReport{
		Insights:    []domain.Insight{{IssueType: "Error Reports", Frequency: 2, ExampleDiscussions: []string{"a", "b"}}},
		GeneratedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, insights.SaveReport(ctx, report))
	got, err := insights.LatestReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.Insights, got.Insights)
	assert.True(t, report.GeneratedAt.Equal(got.GeneratedAt))

	state := domain.NotifyState{IssueType: "Error Reports", Frequency: 2}
	require.NoError(t, insights.SaveNotifyState(ctx, state))
	locked, err := insights.NotifyStateForUpdate(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, locked)
}
