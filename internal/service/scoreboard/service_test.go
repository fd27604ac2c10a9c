package scoreboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-engine/internal/adapter/memory"
	"github.com/heartmarshall/community-engine/internal/domain"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(
		slog.Default(),
		store.Contributors(),
		store.Awards(),
		memory.NewTxManager(store),
		domain.DefaultBadgeThresholds,
		nil,
	)
	return svc, store
}

func TestApplyPoints_CreatesProfileLazily(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.ApplyPoints(ctx, "  Sarah Chen ", domain.PointsDiscussionCreated, domain.ReasonDiscussionCreated)
	require.NoError(t, err)

	assert.Equal(t, "Sarah Chen", got.Name)
	assert.Equal(t, "SC", got.AvatarInitials)
	assert.Equal(t, 10, got.Points)
	assert.Equal(t, 1, got.DiscussionsStarted)
	assert.Equal(t, domain.BadgeMember, got.Badge)
	assert.False(t, got.JoinDate.IsZero())
}

func TestApplyPoints_CountersAndLedger(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	steps := []struct {
		amount int
		reason domain.AwardReason
	}{
		{domain.PointsCommentPosted, domain.ReasonCommentPosted},
		{domain.ReactionInsightful.Points(), domain.ReasonReactionReceived},
		{domain.PointsEventRegistration, domain.ReasonEventRegistration},
		{domain.PointsSolutionProvided, domain.ReasonSolutionProvided},
	}
	var last *domain.Contributor
	for _, st := range steps {
		var err error
		last, err = svc.ApplyPoints(ctx, "ann", st.amount, st.reason)
		require.NoError(t, err)
	}

	assert.Equal(t, 5+5+15+20, last.Points)
	assert.Equal(t, 1, last.CommentsPosted)
	assert.Equal(t, 1, last.SolutionsProvided)
	assert.Equal(t, 0, last.DiscussionsStarted)

	history, err := svc.History(ctx, "ann", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ReasonSolutionProvided, history[0].Reason)
	assert.Equal(t, domain.ReasonEventRegistration, history[1].Reason)
}

func TestApplyPoints_BadgeTransition(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.ApplyPoints(ctx, "ann", 995, domain.ReasonReactionReceived)
	require.NoError(t, err)
	assert.Equal(t, domain.BadgeMember, got.Badge)

	got, err = svc.ApplyPoints(ctx, "ann", domain.PointsCommentPosted, domain.ReasonCommentPosted)
	require.NoError(t, err)
	assert.Equal(t, 1000, got.Points)
	assert.Equal(t, domain.BadgePro, got.Badge)
	assert.InDelta(t, 0.5, svc.Progress(got), 1e-9)
}

func TestApplyPoints_UnknownReasonAwardsWithoutCounters(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.ApplyPoints(ctx, "ann", 7, domain.AwardReason("webinar_host"))
	require.NoError(t, err)

	assert.Equal(t, 7, got.Points)
	assert.Zero(t, got.DiscussionsStarted)
	assert.Zero(t, got.CommentsPosted)
	assert.Zero(t, got.SolutionsProvided)

	history, err := svc.History(ctx, "ann", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.AwardReason("webinar_host"), history[0].Reason)
}

func TestApplyPoints_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.ApplyPoints(context.Background(), " ", -1, domain.AwardReason("  "))
	require.ErrorIs(t, err, domain.ErrValidation)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 3)
}

func TestApplyPoints_ConcurrentAwardsAreNotLost(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ApplyPoints(ctx, "busy", domain.PointsCommentPosted, domain.ReasonCommentPosted)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.GetContributor(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, n*domain.PointsCommentPosted, got.Points)
	assert.Equal(t, n, got.CommentsPosted)

	history, err := svc.History(ctx, "busy", 0)
	require.NoError(t, err)
	assert.Len(t, history, n)
}

func TestLeaderboard_Ordering(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, c := range []*domain.Contributor{
		{Name: "late-tie", Points: 500, JoinDate: base.Add(48 * time.Hour)},
		{Name: "top", Points: 2450, JoinDate: base.Add(72 * time.Hour)},
		{Name: "early-tie", Points: 500, JoinDate: base},
		{Name: "low", Points: 10, JoinDate: base},
	} {
		require.NoError(t, store.Contributors().Create(ctx, c))
	}

	board, err := svc.Leaderboard(ctx, 0)
	require.NoError(t, err)

	var names []string
	for _, c := range board {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"top", "early-tie", "late-tie", "low"}, names)
	assert.Equal(t, domain.BadgeExpert, board[0].Badge)

	top2, err := svc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top2, 2)
}

func TestGetContributor_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.GetContributor(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.History(context.Background(), "ghost", 5)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyPoints_LedgerFailureRollsBack(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	failing := &awardLedgerMock{
		AppendFunc: func(ctx context.Context, a domain.PointAward) error {
			return domain.NewStoreError("append award", errors.New("disk full"))
		},
	}
	svc := NewService(slog.Default(), store.Contributors(), failing, memory.NewTxManager(store), domain.DefaultBadgeThresholds, nil)
	ctx := context.Background()

	_, err := svc.ApplyPoints(ctx, "ann", 10, domain.ReasonDiscussionCreated)
	require.ErrorIs(t, err, domain.ErrStore)

	_, err = store.Contributors().GetByName(ctx, "ann")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
