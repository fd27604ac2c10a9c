package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReactionType is the closed set of comment reactions.
type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionFunny      ReactionType = "funny"
	ReactionInsightful ReactionType = "insightful"
	ReactionLoved      ReactionType = "loved"
)

// ReactionTypes lists every reaction type in display order.
var ReactionTypes = []ReactionType{ReactionLike, ReactionFunny, ReactionInsightful, ReactionLoved}

func (t ReactionType) String() string { return string(t) }

func (t ReactionType) IsValid() bool {
	switch t {
	case ReactionLike, ReactionFunny, ReactionInsightful, ReactionLoved:
		return true
	}
	return false
}

// Points is the score a comment author receives when someone applies t.
func (t ReactionType) Points() int {
	if t == ReactionInsightful {
		return 5
	}
	return 2
}

// ReactionCounts holds per-type reaction counters of a comment.
type ReactionCounts struct {
	Like       int `json:"like"`
	Funny      int `json:"funny"`
	Insightful int `json:"insightful"`
	Loved      int `json:"loved"`
}

// Get returns the counter for t.
func (c ReactionCounts) Get(t ReactionType) int {
	switch t {
	case ReactionLike:
		return c.Like
	case ReactionFunny:
		return c.Funny
	case ReactionInsightful:
		return c.Insightful
	case ReactionLoved:
		return c.Loved
	}
	return 0
}

// Add changes the counter for t by delta. Counters never drop below zero.
func (c *ReactionCounts) Add(t ReactionType, delta int) {
	var p *int
	switch t {
	case ReactionLike:
		p = &c.Like
	case ReactionFunny:
		p = &c.Funny
	case ReactionInsightful:
		p = &c.Insightful
	case ReactionLoved:
		p = &c.Loved
	default:
		return
	}
	*p = max(*p+delta, 0)
}

// Reaction is the single active reaction a user holds on a comment.
type Reaction struct {
	CommentID uuid.UUID
	UserID    string
	Type      ReactionType
	CreatedAt time.Time
}

// ReactionDirection tells whether a React call added or removed a reaction.
type ReactionDirection string

const (
	ReactionAdded   ReactionDirection = "added"
	ReactionRemoved ReactionDirection = "removed"
)

// ReactionDelta describes one counter change caused by React.
type ReactionDelta struct {
	Type      ReactionType
	Direction ReactionDirection
}

// ReactionResult is the outcome of React. Applied is true when the user ends
// up holding a reaction of the requested type. Deltas lists every counter
// change in the order it was applied.
type ReactionResult struct {
	Applied  bool
	Delta    ReactionDelta
	Deltas   []ReactionDelta
	Comment  *Comment
	Previous *ReactionType
}
