package discussion

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/community-engine/internal/adapter/memory"
	"github.com/heartmarshall/community-engine/internal/domain"
	"github.com/heartmarshall/community-engine/internal/service/scoreboard"
)

type fixture struct {
	svc        *Service
	store      *memory.Store
	scoreboard *scoreboard.Service
	refresher  *insightRefresherMock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxManager(store)
	board := scoreboard.NewService(slog.Default(), store.Contributors(), store.Awards(), tx, domain.DefaultBadgeThresholds, nil)
	refresher := &insightRefresherMock{}
	svc := NewService(slog.Default(), store.Discussions(), store.Comments(), board, refresher, tx)
	return &fixture{svc: svc, store: store, scoreboard: board, refresher: refresher}
}

func (f *fixture) create(t *testing.T, title string, category domain.Category, author string) *domain.Discussion {
	t.Helper()
	d, err := f.svc.CreateDiscussion(context.Background(), CreateDiscussionInput{
		Title:    title,
		Category: category,
		Content:  title + " details",
		Author:   author,
	})
	require.NoError(t, err)
	return d
}

func TestCreateDiscussion_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	d, err := f.svc.CreateDiscussion(ctx, CreateDiscussionInput{
		Title:    "  API latency  ",
		Category: domain.CategoryTechnical,
		Content:  "latency spikes",
		Author:   "Sarah Chen",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.Equal(t, "API latency", d.Title)
	assert.Zero(t, d.Views)
	assert.Zero(t, d.ReplyCount)
	assert.False(t, d.Solved)
	assert.WithinDuration(t, time.Now(), d.CreatedAt, time.Minute)

	author, err := f.scoreboard.GetContributor(ctx, "Sarah Chen")
	require.NoError(t, err)
	assert.Equal(t, 10, author.Points)
	assert.Equal(t, 1, author.DiscussionsStarted)

	assert.Equal(t, 1, f.refresher.RefreshCalls())
}

func TestCreateDiscussion_DefaultsAuthor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	d := f.create(t, "Hello", domain.CategoryGeneral, "   ")
	assert.Equal(t, domain.AnonymousAuthor, d.Author)
}

func TestCreateDiscussion_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  CreateDiscussionInput
		fields []string
	}{
		{
			name:   "empty title",
			input:  CreateDiscussionInput{Title: " ", Category: domain.CategoryGeneral, Content: "x"},
			fields: []string{"title"},
		},
		{
			name:   "unknown category",
			input:  CreateDiscussionInput{Title: "t", Category: "Gossip", Content: "x"},
			fields: []string{"category"},
		},
		{
			name:   "all as category",
			input:  CreateDiscussionInput{Title: "t", Category: domain.CategoryAll, Content: "x"},
			fields: []string{"category"},
		},
		{
			name:   "everything missing",
			input:  CreateDiscussionInput{},
			fields: []string{"title", "category", "content"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			_, err := f.svc.CreateDiscussion(context.Background(), tt.input)
			require.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			var got []string
			for _, fe := range ve.Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)

			n, err := f.store.Discussions().Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
			assert.Zero(t, f.refresher.RefreshCalls())
		})
	}
}

func TestCreateDiscussion_AwardFailureRollsBack(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	awarder := &pointAwarderMock{
		ApplyPointsFunc: func(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error) {
			return nil, domain.NewStoreError("update contributor", errors.New("io"))
		},
	}
	refresher := &insightRefresherMock{}
	svc := NewService(slog.Default(), store.Discussions(), store.Comments(), awarder, refresher, memory.NewTxManager(store))

	_, err := svc.CreateDiscussion(context.Background(), CreateDiscussionInput{
		Title: "t", Category: domain.CategoryGeneral, Content: "c", Author: "ann",
	})
	require.ErrorIs(t, err, domain.ErrStore)

	n, err := store.Discussions().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, refresher.RefreshCalls())
}

func TestCreateDiscussion_RefreshFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.refresher.RefreshFunc = func(ctx context.Context) (*domain.InsightReport, error) {
		return nil, errors.New("miner down")
	}

	d := f.create(t, "Still saved", domain.CategoryTechnical, "ann")

	got, err := f.svc.GetDiscussion(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Still saved", got.Title)
}

func TestAddComment_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t, "Connection drops", domain.CategoryTechnical, "ann")

	c, err := f.svc.AddComment(ctx, AddCommentInput{DiscussionID: d.ID, Author: "bob", Content: "same here"})
	require.NoError(t, err)
	assert.Equal(t, d.ID, c.DiscussionID)
	assert.Equal(t, domain.ReactionCounts{}, c.Reactions)

	got, err := f.svc.GetDiscussion(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReplyCount)
	require.Len(t, got.Comments, 1)

	bob, err := f.scoreboard.GetContributor(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 5, bob.Points)
	assert.Equal(t, 1, bob.CommentsPosted)

	// create + technical comment
	assert.Equal(t, 2, f.refresher.RefreshCalls())
}

func TestAddComment_NonTechnicalSkipsRefresh(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	d := f.create(t, "Welcome", domain.CategoryGeneral, "ann")

	_, err := f.svc.AddComment(context.Background(), AddCommentInput{DiscussionID: d.ID, Author: "bob", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.refresher.RefreshCalls())
}

func TestAddComment_NestedReply(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t, "Thread", domain.CategoryGeneral, "ann")

	top, err := f.svc.AddComment(ctx, AddCommentInput{DiscussionID: d.ID, Author: "bob", Content: "top"})
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, AddCommentInput{DiscussionID: d.ID, ParentID: &top.ID, Author: "ann", Content: "reply"})
	require.NoError(t, err)

	got, err := f.svc.GetDiscussion(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReplyCount)
	require.Len(t, got.Comments, 1)
	require.Len(t, got.Comments[0].Replies, 1)
	assert.Equal(t, "reply", got.Comments[0].Replies[0].Content)
}

func TestAddComment_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t, "Thread", domain.CategoryGeneral, "ann")
	other := f.create(t, "Other", domain.CategoryGeneral, "ann")
	foreign, err := f.svc.AddComment(ctx, AddCommentInput{DiscussionID: other.ID, Author: "bob", Content: "x"})
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, AddCommentInput{DiscussionID: uuid.New(), Author: "bob", Content: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.AddComment(ctx, AddCommentInput{DiscussionID: d.ID, Author: "bob", Content: "  "})
	require.ErrorIs(t, err, domain.ErrValidation)

	missing := uuid.New()
	_, err = f.svc.AddComment(ctx, AddCommentInput{DiscussionID: d.ID, ParentID: &missing, Content: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.AddComment(ctx, AddCommentInput{DiscussionID: d.ID, ParentID: &foreign.ID, Content: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.svc.GetDiscussion(ctx, d.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ReplyCount)
}

func TestIncrementViews(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t, "Viewed", domain.CategoryGeneral, "ann")

	for want := 1; want <= 3; want++ {
		views, err := f.svc.IncrementViews(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, want, views)
	}

	_, err := f.svc.IncrementViews(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)

	ann, err := f.scoreboard.GetContributor(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, 10, ann.Points)
}

func TestLikeDiscussion(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	d := f.create(t, "Liked", domain.CategoryGeneral, "ann")

	likes, err := f.svc.LikeDiscussion(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	_, err = f.svc.LikeDiscussion(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDiscussions_FilterAndSort(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	first := f.create(t, "API errors", domain.CategoryTechnical, "Sarah")
	second := f.create(t, "Roadmap ideas", domain.CategoryFeatureRequest, "Mike")
	third := f.create(t, "Deploy guide", domain.CategoryTutorial, "sarah")

	_, err := f.svc.LikeDiscussion(ctx, second.ID)
	require.NoError(t, err)
	_, err = f.svc.IncrementViews(ctx, second.ID)
	require.NoError(t, err)

	ids := func(ds []*domain.Discussion) []uuid.UUID {
		var out []uuid.UUID
		for _, d := range ds {
			out = append(out, d.ID)
		}
		return out
	}

	all, err := f.svc.ListDiscussions(ctx, domain.DiscussionFilter{Category: domain.CategoryAll})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, ids(all))

	sarah, err := f.svc.ListDiscussions(ctx, domain.DiscussionFilter{SearchText: "sArAh"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID, third.ID}, ids(sarah))

	tech, err := f.svc.ListDiscussions(ctx, domain.DiscussionFilter{Category: domain.CategoryTechnical})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, ids(tech))

	popular, err := f.svc.ListDiscussions(ctx, domain.DiscussionFilter{Sort: domain.SortPopular})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID, first.ID, third.ID}, ids(popular))

	_, err = f.svc.ListDiscussions(ctx, domain.DiscussionFilter{Sort: "random"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestMarkSolved_AwardsOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t, "Crash on start", domain.CategoryTechnical, "ann")

	got, err := f.svc.MarkSolved(ctx, MarkSolvedInput{DiscussionID: d.ID, Solver: "bob"})
	require.NoError(t, err)
	assert.True(t, got.Solved)

	_, err = f.svc.MarkSolved(ctx, MarkSolvedInput{DiscussionID: d.ID, Solver: "bob"})
	require.NoError(t, err)

	bob, err := f.scoreboard.GetContributor(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.PointsSolutionProvided, bob.Points)
	assert.Equal(t, 1, bob.SolutionsProvided)

	_, err = f.svc.MarkSolved(ctx, MarkSolvedInput{DiscussionID: uuid.New(), Solver: "bob"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.MarkSolved(ctx, MarkSolvedInput{DiscussionID: d.ID})
	require.ErrorIs(t, err, domain.ErrValidation)
}
