package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a discussion.
type Category string

const (
	CategoryTechnical      Category = "Technical"
	CategoryGeneral        Category = "General"
	CategoryTutorial       Category = "Tutorial"
	CategoryFeatureRequest Category = "Feature Request"

	// CategoryAll is the list filter value that disables category filtering.
	CategoryAll Category = "All"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryTechnical, CategoryGeneral, CategoryTutorial, CategoryFeatureRequest:
		return true
	}
	return false
}

// AnonymousAuthor is used when a discussion or comment arrives without an author.
const AnonymousAuthor = "Anonymous"

// Discussion is a community thread. ReplyCount mirrors the number of
// top-level comments and is filled in by the store on read.
type Discussion struct {
	ID         uuid.UUID
	Title      string
	Author     string
	Category   Category
	Content    string
	CreatedAt  time.Time
	Solved     bool
	Views      int
	ReplyCount int
	LikeCount  int
	Comments   []Comment
}

// Comment belongs to a discussion. Replies hold nested comments whose
// ParentID points at this comment.
type Comment struct {
	ID           uuid.UUID
	DiscussionID uuid.UUID
	ParentID     *uuid.UUID
	Author       string
	Content      string
	CreatedAt    time.Time
	Reactions    ReactionCounts
	Replies      []Comment
}

// Walk calls fn for every comment in the thread, depth first, parents before replies.
func (d *Discussion) Walk(fn func(c *Comment)) {
	var walk func(cs []Comment)
	walk = func(cs []Comment) {
		for i := range cs {
			fn(&cs[i])
			walk(cs[i].Replies)
		}
	}
	walk(d.Comments)
}

// FindComment returns the comment with the given id anywhere in the thread.
func (d *Discussion) FindComment(id uuid.UUID) (*Comment, bool) {
	var found *Comment
	d.Walk(func(c *Comment) {
		if found == nil && c.ID == id {
			found = c
		}
	})
	return found, found != nil
}

// Popularity is the ranking score used by the "popular" listing order.
func (d *Discussion) Popularity() int {
	return d.LikeCount + d.ReplyCount + d.Views
}

// DiscussionSort selects the listing order.
type DiscussionSort string

const (
	// SortInsertion keeps store insertion order.
	SortInsertion DiscussionSort = ""
	SortRecent    DiscussionSort = "recent"
	SortPopular   DiscussionSort = "popular"
)

func (s DiscussionSort) IsValid() bool {
	switch s {
	case SortInsertion, SortRecent, SortPopular:
		return true
	}
	return false
}

// DiscussionFilter narrows ListDiscussions. Empty SearchText and an empty or
// "All" category match everything.
type DiscussionFilter struct {
	SearchText string
	Category   Category
	Sort       DiscussionSort
}

// BuildCommentTree nests a flat, insertion-ordered comment list under
// their parents. Comments whose parent is missing are kept at top level.
func BuildCommentTree(flat []Comment) []Comment {
	children := make(map[uuid.UUID][]Comment, len(flat))
	known := make(map[uuid.UUID]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}

	var roots []Comment
	for _, c := range flat {
		if c.ParentID != nil && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var attach func(cs []Comment) []Comment
	attach = func(cs []Comment) []Comment {
		for i := range cs {
			cs[i].Replies = attach(children[cs[i].ID])
		}
		return cs
	}
	return attach(roots)
}
