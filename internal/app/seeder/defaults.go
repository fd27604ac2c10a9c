package seeder

import (
	"time"

	"github.com/heartmarshall/community-engine/internal/domain"
)

type demoContributor struct {
	Name   string
	Points int
}

// demoContributors are the opening leaderboard, one per badge tier at least.
var demoContributors = []demoContributor{
	{Name: "Sarah Chen", Points: 2450},
	{Name: "Mike Rodriguez", Points: 1820},
	{Name: "Emily Johnson", Points: 1340},
	{Name: "David Kim", Points: 890},
	{Name: "Lisa Wang", Points: 650},
}

type demoComment struct {
	Author    string
	Content   string
	Reactions domain.ReactionCounts
	Replies   []demoComment
}

type demoDiscussion struct {
	Title    string
	Author   string
	Category domain.Category
	Content  string
	Age      time.Duration
	Solved   bool
	Views    int
	Likes    int
	Comments []demoComment
}

var demoDiscussions = []demoDiscussion{
	{
		Title:    "Voice agent latency spikes during peak hours",
		Author:   "Mike Rodriguez",
		Category: domain.CategoryTechnical,
		Content:  "Between 5pm and 7pm our agents respond 2-3 seconds late. Is anyone else seeing latency like this?",
		Age:      2 * time.Hour,
		Views:    156,
		Likes:    12,
		Comments: []demoComment{
			{
				Author:    "Sarah Chen",
				Content:   "We saw the same thing. Moving the agents to a closer region cut the latency in half.",
				Reactions: domain.ReactionCounts{Like: 8, Insightful: 5},
				Replies: []demoComment{
					{Author: "Mike Rodriguez", Content: "Thanks, trying that today.", Reactions: domain.ReactionCounts{Like: 1}},
				},
			},
		},
	},
	{
		Title:    "CRM integration keeps dropping the connection",
		Author:   "Emily Johnson",
		Category: domain.CategoryTechnical,
		Content:  "The webhook connection to our CRM times out after a few minutes and the API returns an error.",
		Age:      5 * time.Hour,
		Views:    89,
		Likes:    7,
		Comments: []demoComment{
			{Author: "David Kim", Content: "Check the keep-alive settings on your proxy.", Reactions: domain.ReactionCounts{Like: 3}},
		},
	},
	{
		Title:    "Best practices for conversation design",
		Author:   "Lisa Wang",
		Category: domain.CategoryTutorial,
		Content:  "A short guide on writing prompts and fallbacks that keep calls on track.",
		Age:      26 * time.Hour,
		Solved:   true,
		Views:    342,
		Likes:    45,
		Comments: []demoComment{
			{Author: "Sarah Chen", Content: "Great write-up, bookmarking this.", Reactions: domain.ReactionCounts{Loved: 4, Like: 6}},
		},
	},
	{
		Title:    "Support for multiple languages in one call",
		Author:   "David Kim",
		Category: domain.CategoryFeatureRequest,
		Content:  "Callers sometimes switch languages mid-call. It would help if the agent followed them.",
		Age:      72 * time.Hour,
		Views:    201,
		Likes:    28,
	},
	{
		Title:    "Welcome to the community!",
		Author:   "Sarah Chen",
		Category: domain.CategoryGeneral,
		Content:  "Introduce yourself and tell us what you are building.",
		Age:      7 * 24 * time.Hour,
		Views:    512,
		Likes:    63,
	},
}

type demoEvent struct {
	Title       string
	In          time.Duration
	Description string
	MaxUsers    int
}

var demoEvents = []demoEvent{
	{Title: "Voice AI Workshop", In: 7 * 24 * time.Hour, Description: "Hands-on session building your first voice agent.", MaxUsers: 50},
	{Title: "Community Office Hours", In: 3 * 24 * time.Hour, Description: "Bring your questions to the product team.", MaxUsers: 25},
	{Title: "Integration Deep Dive", In: 14 * 24 * time.Hour, Description: "CRM and telephony integrations in depth.", MaxUsers: 100},
}
