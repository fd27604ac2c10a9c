package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// Phase names.
const (
	PhaseContributors = "contributors"
	PhaseDiscussions  = "discussions"
	PhaseEvents       = "events"
)

// allPhases defines the canonical phase list.
var allPhases = []string{PhaseContributors, PhaseDiscussions, PhaseEvents}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Pipeline seeds each empty collection with demo data. Phases touch
// disjoint collections and run concurrently, each in its own transaction.
type Pipeline struct {
	log    *slog.Logger
	stores Stores
	tx     TxManager
	now    func() time.Time

	mu      sync.Mutex
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, stores Stores, tx TxManager) *Pipeline {
	return &Pipeline{
		log:     log.With("component", "seeder"),
		stores:  stores,
		tx:      tx,
		now:     func() time.Time { return time.Now().UTC() },
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]PhaseResult, len(p.results))
	for k, v := range p.results {
		out[k] = v
	}
	return out
}

// HasErrors returns true if any phase failed.
func (p *Pipeline) HasErrors() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases run.
// A failed phase does not stop the others; the first failure is returned.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	var g errgroup.Group
	for _, phase := range toRun {
		g.Go(func() error {
			return p.runPhase(ctx, phase)
		})
	}
	err := g.Wait()

	p.log.InfoContext(ctx, "pipeline completed", slog.Int("phases_run", len(toRun)))
	return err
}

func (p *Pipeline) runPhase(ctx context.Context, phase string) error {
	start := time.Now()
	p.log.DebugContext(ctx, "starting phase", slog.String("phase", phase))

	var result PhaseResult
	switch phase {
	case PhaseContributors:
		result = p.runContributors(ctx)
	case PhaseDiscussions:
		result = p.runDiscussions(ctx)
	case PhaseEvents:
		result = p.runEvents(ctx)
	}
	result.Duration = time.Since(start)

	p.mu.Lock()
	p.results[phase] = result
	p.mu.Unlock()

	switch {
	case result.Err != nil:
		p.log.ErrorContext(ctx, "phase failed",
			slog.String("phase", phase),
			slog.String("error", result.Err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return fmt.Errorf("seed %s: %w", phase, result.Err)
	case result.Skipped:
		p.log.InfoContext(ctx, "phase skipped, collection not empty", slog.String("phase", phase))
	default:
		p.log.InfoContext(ctx, "phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Duration("duration", result.Duration),
		)
	}
	return nil
}

// runContributors grants the opening balances through the scoreboard.
func (p *Pipeline) runContributors(ctx context.Context) PhaseResult {
	n, err := p.stores.Contributors.Count(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("count contributors: %w", err)}
	}
	if n > 0 {
		return PhaseResult{Skipped: true}
	}

	var result PhaseResult
	err = p.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, c := range demoContributors {
			if _, err := p.stores.Points.ApplyPoints(txCtx, c.Name, c.Points, domain.ReasonSeedBalance); err != nil {
				return fmt.Errorf("apply balance to %s: %w", c.Name, err)
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return result
}

func (p *Pipeline) runDiscussions(ctx context.Context) PhaseResult {
	n, err := p.stores.Discussions.Count(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("count discussions: %w", err)}
	}
	if n > 0 {
		return PhaseResult{Skipped: true}
	}

	now := p.now()
	var result PhaseResult
	err = p.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, dd := range demoDiscussions {
			created := now.Add(-dd.Age)
			d := &domain.Discussion{
				ID:        uuid.New(),
				Title:     dd.Title,
				Author:    dd.Author,
				Category:  dd.Category,
				Content:   dd.Content,
				CreatedAt: created,
				Solved:    dd.Solved,
				Views:     dd.Views,
				LikeCount: dd.Likes,
			}
			if err := p.stores.Discussions.Create(txCtx, d); err != nil {
				return fmt.Errorf("create discussion %q: %w", dd.Title, err)
			}
			result.Inserted++

			count, err := p.createComments(txCtx, d.ID, nil, dd.Comments, created)
			if err != nil {
				return fmt.Errorf("comments of %q: %w", dd.Title, err)
			}
			result.Inserted += count
		}
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return result
}

// createComments inserts a demo thread parents first. Each comment is
// timestamped a minute after the one before it.
func (p *Pipeline) createComments(ctx context.Context, discussionID uuid.UUID, parentID *uuid.UUID, comments []demoComment, after time.Time) (int, error) {
	inserted := 0
	at := after
	for _, dc := range comments {
		at = at.Add(time.Minute)
		c := &domain.Comment{
			ID:           uuid.New(),
			DiscussionID: discussionID,
			ParentID:     parentID,
			Author:       dc.Author,
			Content:      dc.Content,
			CreatedAt:    at,
			Reactions:    dc.Reactions,
		}
		if err := p.stores.Comments.Create(ctx, c); err != nil {
			return inserted, err
		}
		inserted++

		n, err := p.createComments(ctx, discussionID, &c.ID, dc.Replies, at)
		inserted += n
		if err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func (p *Pipeline) runEvents(ctx context.Context) PhaseResult {
	n, err := p.stores.Events.Count(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("count events: %w", err)}
	}
	if n > 0 {
		return PhaseResult{Skipped: true}
	}

	now := p.now()
	var result PhaseResult
	err = p.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, de := range demoEvents {
			e := &domain.Event{
				ID:          uuid.New(),
				Title:       de.Title,
				Date:        now.Add(de.In).Truncate(time.Hour),
				Description: de.Description,
				MaxUsers:    de.MaxUsers,
				CreatedAt:   now,
			}
			if err := p.stores.Events.Create(txCtx, e); err != nil {
				return fmt.Errorf("create event %q: %w", de.Title, err)
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return result
}
