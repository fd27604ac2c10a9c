package testhelper

import (
	"context"
	"testing"

	"github.com/heartmarshall/community-engine/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	d := SeedDiscussion(t, pool, domain.CategoryTechnical, "smoke")

	var title string
	err := pool.QueryRow(
		context.Background(),
		`SELECT title FROM discussions WHERE id = $1`,
		d.ID,
	).Scan(&title)
	if err != nil {
		t.Fatalf("expected discussion in DB, got error: %v", err)
	}

	if title != d.Title {
		t.Fatalf("expected title %q, got %q", d.Title, title)
	}

	var state int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM insight_state`).Scan(&state); err != nil {
		t.Fatalf("count insight_state: %v", err)
	}
	if state != 1 {
		t.Fatalf("expected the insight_state row to be seeded, got %d rows", state)
	}
}
