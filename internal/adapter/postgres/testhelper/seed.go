package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueName returns prefix with a random suffix, for contributor and user names.
func UniqueName(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// SeedDiscussion inserts a discussion with the given category and returns it.
func SeedDiscussion(t *testing.T, pool *pgxpool.Pool, category domain.Category, title string) domain.Discussion {
	t.Helper()

	d := domain.Discussion{
		ID:        uuid.New(),
		Title:     title,
		Author:    UniqueName("author"),
		Category:  category,
		Content:   "seeded " + uniqueSuffix(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO discussions (id, title, author, category, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.Title, d.Author, string(d.Category), d.Content, d.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDiscussion: %v", err)
	}
	return d
}

// SeedComment inserts a comment under discussionID, optionally as a reply.
func SeedComment(t *testing.T, pool *pgxpool.Pool, discussionID uuid.UUID, parentID *uuid.UUID, content string) domain.Comment {
	t.Helper()

	c := domain.Comment{
		ID:           uuid.New(),
		DiscussionID: discussionID,
		ParentID:     parentID,
		Author:       UniqueName("commenter"),
		Content:      content,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO comments (id, discussion_id, parent_id, author, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.DiscussionID, c.ParentID, c.Author, c.Content, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment: %v", err)
	}
	return c
}

// SeedEvent inserts an event with maxUsers seats.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, maxUsers int) domain.Event {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Event{
		ID:          uuid.New(),
		Title:       "Event " + uniqueSuffix(),
		Date:        now.Add(7 * 24 * time.Hour),
		Description: "seeded",
		MaxUsers:    maxUsers,
		CreatedAt:   now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO events (id, title, date, description, max_users, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Title, e.Date, e.Description, e.MaxUsers, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent: %v", err)
	}
	return e
}
