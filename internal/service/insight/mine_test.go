package insight

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/community-engine/internal/domain"
)

func technical(title, content string, comments ...string) *domain.Discussion {
	d := &domain.Discussion{ID: uuid.New(), Title: title, Content: content, Category: domain.CategoryTechnical}
	for _, c := range comments {
		d.Comments = append(d.Comments, domain.Comment{ID: uuid.New(), Content: c})
	}
	return d
}

func TestMine_SingleDiscussion(t *testing.T) {
	t.Parallel()

	got := Mine([]*domain.Discussion{technical("API latency causing timeouts", "")}, 5, 3)

	assert.Equal(t, []domain.Insight{
		{IssueType: "High Latency Issues", Frequency: 1, ExampleDiscussions: []string{"API latency causing timeouts"}},
		{IssueType: "API Issues", Frequency: 1, ExampleDiscussions: []string{"API latency causing timeouts"}},
		{IssueType: "Timeout Issues", Frequency: 1, ExampleDiscussions: []string{"API latency causing timeouts"}},
	}, got)
}

func TestMine_IgnoresOtherCategories(t *testing.T) {
	t.Parallel()

	d := technical("latency everywhere", "")
	d.Category = domain.CategoryGeneral

	assert.Empty(t, Mine([]*domain.Discussion{d}, 5, 3))
}

func TestMine_CountsDiscussionOncePerKeyword(t *testing.T) {
	t.Parallel()

	d := technical("Latency", "LATENCY latency", "still latency")
	got := Mine([]*domain.Discussion{d}, 5, 3)

	assert.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Frequency)
}

func TestMine_SearchesNestedReplies(t *testing.T) {
	t.Parallel()

	d := technical("Help", "nothing here")
	d.Comments = []domain.Comment{{
		ID:      uuid.New(),
		Content: "same",
		Replies: []domain.Comment{{ID: uuid.New(), Content: "the app did crash"}},
	}}

	got := Mine([]*domain.Discussion{d}, 5, 3)
	assert.Equal(t, []domain.Insight{{IssueType: "Stability Issues", Frequency: 1, ExampleDiscussions: []string{"Help"}}}, got)
}

func TestMine_RankingAndLimits(t *testing.T) {
	t.Parallel()

	discussions := []*domain.Discussion{
		technical("one", "timeout"),
		technical("two", "timeout"),
		technical("three", "timeout connection"),
		technical("four", "timeout connection"),
		technical("five", "crash latency"),
		technical("six", "error integration performance"),
	}

	got := Mine(discussions, 5, 3)
	types := make([]string, 0, len(got))
	for _, ins := range got {
		types = append(types, ins.IssueType)
	}

	assert.Equal(t, []string{
		"Timeout Issues",
		"Connection Problems",
		"High Latency Issues",
		"Error Reports",
		"Stability Issues",
	}, types)
	assert.Equal(t, 4, got[0].Frequency)
	assert.Equal(t, []string{"one", "two", "three"}, got[0].ExampleDiscussions)
}

func TestMine_DeduplicatesExampleTitles(t *testing.T) {
	t.Parallel()

	got := Mine([]*domain.Discussion{
		technical("Same", "error"),
		technical("Same", "error"),
		technical("Other", "error"),
	}, 5, 3)

	assert.Equal(t, 3, got[0].Frequency)
	assert.Equal(t, []string{"Same", "Other"}, got[0].ExampleDiscussions)
}

func TestMine_Stable(t *testing.T) {
	t.Parallel()

	discussions := []*domain.Discussion{
		technical("a", "api error"),
		technical("b", "performance timeout"),
		technical("c", "integration connection latency"),
	}

	assert.Equal(t, Mine(discussions, 5, 3), Mine(discussions, 5, 3))
}
