package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryTechnical, true},
		{CategoryGeneral, true},
		{CategoryTutorial, true},
		{CategoryFeatureRequest, true},
		{CategoryAll, false},
		{Category("technical"), false},
		{Category(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.IsValid())
		})
	}
}

func TestReactionType_Points(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, ReactionLike.Points())
	assert.Equal(t, 2, ReactionFunny.Points())
	assert.Equal(t, 5, ReactionInsightful.Points())
	assert.Equal(t, 2, ReactionLoved.Points())
	assert.False(t, ReactionType("angry").IsValid())
}

func TestAwardReason_Label(t *testing.T) {
	t.Parallel()

	assert.True(t, ReasonSeedBalance.IsValid())
	assert.Equal(t, "comment_posted", ReasonCommentPosted.Label())
	assert.False(t, AwardReason("webinar_host").IsValid())
	assert.Equal(t, "other", AwardReason("webinar_host").Label())
}

func TestReactionCounts_AddFloorsAtZero(t *testing.T) {
	t.Parallel()

	var c ReactionCounts
	c.Add(ReactionLoved, 1)
	c.Add(ReactionLoved, -1)
	c.Add(ReactionLoved, -1)
	c.Add(ReactionInsightful, 2)
	c.Add(ReactionType("bogus"), 1)

	assert.Equal(t, 0, c.Get(ReactionLoved))
	assert.Equal(t, 2, c.Get(ReactionInsightful))
	assert.Equal(t, ReactionCounts{Insightful: 2}, c)
}

func TestBadgeThresholds(t *testing.T) {
	t.Parallel()

	th := DefaultBadgeThresholds
	tests := []struct {
		points   int
		badge    Badge
		progress float64
	}{
		{0, BadgeMember, 0},
		{500, BadgeMember, 0.5},
		{999, BadgeMember, 0.999},
		{1000, BadgePro, 0.5},
		{1999, BadgePro, 0.9995},
		{2000, BadgeExpert, 2000.0 / 3000.0},
		{4500, BadgeExpert, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.badge, th.BadgeFor(tt.points), "points=%d", tt.points)
		assert.InDelta(t, tt.progress, th.Progress(tt.points), 1e-9, "points=%d", tt.points)
	}
}

func TestInitials(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SC", Initials("Sarah Chen"))
	assert.Equal(t, "MJ", Initials("mike  j. ross"))
	assert.Equal(t, "A", Initials("Anonymous"))
	assert.Equal(t, "?", Initials("   "))
}

func TestBuildCommentTree(t *testing.T) {
	t.Parallel()

	root1, root2, reply, nested := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	orphanParent := uuid.New()
	flat := []Comment{
		{ID: root1, Content: "first"},
		{ID: reply, ParentID: &root1, Content: "reply"},
		{ID: root2, Content: "second"},
		{ID: nested, ParentID: &reply, Content: "nested"},
		{ID: uuid.New(), ParentID: &orphanParent, Content: "orphan"},
	}

	tree := BuildCommentTree(flat)
	require.Len(t, tree, 3)
	assert.Equal(t, root1, tree[0].ID)
	assert.Equal(t, root2, tree[1].ID)
	assert.Equal(t, "orphan", tree[2].Content)

	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, reply, tree[0].Replies[0].ID)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, nested, tree[0].Replies[0].Replies[0].ID)

	d := Discussion{Comments: tree}
	var order []string
	d.Walk(func(c *Comment) { order = append(order, c.Content) })
	assert.Equal(t, []string{"first", "reply", "nested", "second", "orphan"}, order)

	got, ok := d.FindComment(nested)
	require.True(t, ok)
	assert.Equal(t, "nested", got.Content)
}

func TestEvent_Seats(t *testing.T) {
	t.Parallel()

	e := Event{MaxUsers: 2, RegisteredUsers: 1, Registrants: []string{"ann"}}
	assert.False(t, e.Full())
	assert.Equal(t, 1, e.SeatsLeft())
	assert.True(t, e.IsRegistered("ann"))
	assert.False(t, e.IsRegistered("bob"))

	e.RegisteredUsers = 2
	assert.True(t, e.Full())
	assert.Equal(t, 0, e.SeatsLeft())
}

func TestNotifyState_Announced(t *testing.T) {
	t.Parallel()

	s := NotifyState{IssueType: "Error Reports", Frequency: 2}
	assert.True(t, s.Announced(Insight{IssueType: "Error Reports", Frequency: 2}))
	assert.False(t, s.Announced(Insight{IssueType: "Error Reports", Frequency: 3}))
	assert.False(t, s.Announced(Insight{IssueType: "API Issues", Frequency: 2}))
}
