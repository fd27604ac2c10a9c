package insight

import (
	"slices"
	"strings"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// Issue maps a keyword to the issue type reported for it.
type Issue struct {
	Keyword   string
	IssueType string
}

// Taxonomy is the ordered keyword table. The order breaks frequency ties.
var Taxonomy = []Issue{
	{Keyword: "latency", IssueType: "High Latency Issues"},
	{Keyword: "connection", IssueType: "Connection Problems"},
	{Keyword: "error", IssueType: "Error Reports"},
	{Keyword: "crash", IssueType: "Stability Issues"},
	{Keyword: "integration", IssueType: "Integration Challenges"},
	{Keyword: "api", IssueType: "API Issues"},
	{Keyword: "performance", IssueType: "Performance Concerns"},
	{Keyword: "timeout", IssueType: "Timeout Issues"},
}

const (
	DefaultTopN         = 5
	DefaultExampleLimit = 3
)

// Mine counts, per taxonomy entry, the Technical discussions whose text
// contains the keyword. Matching is a literal lowercase substring search over
// the title, content and every comment in the tree. Results are ordered by
// frequency descending, ties by taxonomy order, and cut to topN.
func Mine(discussions []*domain.Discussion, topN, exampleLimit int) []domain.Insight {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if exampleLimit <= 0 {
		exampleLimit = DefaultExampleLimit
	}

	type tally struct {
		order int
		ins   domain.Insight
	}
	found := make([]*tally, len(Taxonomy))

	for _, d := range discussions {
		if d.Category != domain.CategoryTechnical {
			continue
		}
		blob := textOf(d)
		for i, issue := range Taxonomy {
			if !strings.Contains(blob, issue.Keyword) {
				continue
			}
			t := found[i]
			if t == nil {
				t = &tally{order: i, ins: domain.Insight{IssueType: issue.IssueType, ExampleDiscussions: []string{}}}
				found[i] = t
			}
			t.ins.Frequency++
			if len(t.ins.ExampleDiscussions) < exampleLimit && !slices.Contains(t.ins.ExampleDiscussions, d.Title) {
				t.ins.ExampleDiscussions = append(t.ins.ExampleDiscussions, d.Title)
			}
		}
	}

	ranked := make([]*tally, 0, len(found))
	for _, t := range found {
		if t != nil {
			ranked = append(ranked, t)
		}
	}
	slices.SortStableFunc(ranked, func(a, b *tally) int {
		if a.ins.Frequency != b.ins.Frequency {
			return b.ins.Frequency - a.ins.Frequency
		}
		return a.order - b.order
	})

	out := make([]domain.Insight, 0, min(len(ranked), topN))
	for _, t := range ranked {
		if len(out) == topN {
			break
		}
		out = append(out, t.ins)
	}
	return out
}

func textOf(d *domain.Discussion) string {
	var b strings.Builder
	b.WriteString(d.Title)
	b.WriteByte(' ')
	b.WriteString(d.Content)
	d.Walk(func(c *domain.Comment) {
		b.WriteByte(' ')
		b.WriteString(c.Content)
	})
	return domain.NormalizeText(b.String())
}
