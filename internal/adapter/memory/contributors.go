package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// ContributorRepo stores contributor profiles keyed by name.
type ContributorRepo struct {
	s *Store
}

// Contributors returns the contributor repository of the store.
func (s *Store) Contributors() *ContributorRepo { return &ContributorRepo{s: s} }

// Create inserts a profile.
func (r *ContributorRepo) Create(ctx context.Context, c *domain.Contributor) error {
	return r.s.write(ctx, func(t *txn) error {
		return r.insert(t, c)
	})
}

func (r *ContributorRepo) insert(t *txn, c *domain.Contributor) error {
	if _, ok := r.s.contributors[c.Name]; ok {
		return fmt.Errorf("contributor %q: %w", c.Name, domain.ErrAlreadyExists)
	}
	row := *c
	r.s.contributors[row.Name] = &row
	r.s.contributorOrder = append(r.s.contributorOrder, row.Name)
	t.onRollback(func() {
		delete(r.s.contributors, row.Name)
		r.s.contributorOrder = r.s.contributorOrder[:len(r.s.contributorOrder)-1]
	})
	return nil
}

// GetOrCreateForUpdate returns the profile named seed.Name, inserting seed
// first when it does not exist yet.
func (r *ContributorRepo) GetOrCreateForUpdate(ctx context.Context, seed *domain.Contributor) (*domain.Contributor, error) {
	var out *domain.Contributor
	err := r.s.write(ctx, func(t *txn) error {
		if _, ok := r.s.contributors[seed.Name]; !ok {
			if err := r.insert(t, seed); err != nil {
				return err
			}
		}
		c := *r.s.contributors[seed.Name]
		out = &c
		return nil
	})
	return out, err
}

// Update overwrites the stored profile.
func (r *ContributorRepo) Update(ctx context.Context, c *domain.Contributor) error {
	return r.s.write(ctx, func(t *txn) error {
		row, ok := r.s.contributors[c.Name]
		if !ok {
			return fmt.Errorf("contributor %q: %w", c.Name, domain.ErrNotFound)
		}
		prev := *row
		*row = *c
		t.onRollback(func() { *row = prev })
		return nil
	})
}

// GetByName returns one profile.
func (r *ContributorRepo) GetByName(ctx context.Context, name string) (*domain.Contributor, error) {
	var out *domain.Contributor
	err := r.s.read(ctx, func() error {
		row, ok := r.s.contributors[name]
		if !ok {
			return fmt.Errorf("contributor %q: %w", name, domain.ErrNotFound)
		}
		c := *row
		out = &c
		return nil
	})
	return out, err
}

// GetByNames returns the profiles that exist among names, in no particular order.
func (r *ContributorRepo) GetByNames(ctx context.Context, names []string) ([]*domain.Contributor, error) {
	var out []*domain.Contributor
	err := r.s.read(ctx, func() error {
		for _, name := range slices.Compact(slices.Sorted(slices.Values(names))) {
			if row, ok := r.s.contributors[name]; ok {
				c := *row
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

// List returns every profile in creation order.
func (r *ContributorRepo) List(ctx context.Context) ([]*domain.Contributor, error) {
	var out []*domain.Contributor
	err := r.s.read(ctx, func() error {
		out = make([]*domain.Contributor, 0, len(r.s.contributorOrder))
		for _, name := range r.s.contributorOrder {
			c := *r.s.contributors[name]
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// Count returns the number of profiles.
func (r *ContributorRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.read(ctx, func() error {
		n = len(r.s.contributors)
		return nil
	})
	return n, err
}

// AwardRepo is the append-only points ledger.
type AwardRepo struct {
	s *Store
}

// Awards returns the points ledger of the store.
func (s *Store) Awards() *AwardRepo { return &AwardRepo{s: s} }

// Append records an award.
func (r *AwardRepo) Append(ctx context.Context, a domain.PointAward) error {
	return r.s.write(ctx, func(t *txn) error {
		if _, ok := r.s.contributors[a.Contributor]; !ok {
			return fmt.Errorf("contributor %q: %w", a.Contributor, domain.ErrNotFound)
		}
		r.s.awards = append(r.s.awards, a)
		t.onRollback(func() { r.s.awards = r.s.awards[:len(r.s.awards)-1] })
		return nil
	})
}

// ListByContributor returns up to limit awards of name, newest first.
// limit <= 0 returns all of them.
func (r *AwardRepo) ListByContributor(ctx context.Context, name string, limit int) ([]domain.PointAward, error) {
	var out []domain.PointAward
	err := r.s.read(ctx, func() error {
		for i := len(r.s.awards) - 1; i >= 0; i-- {
			if r.s.awards[i].Contributor != name {
				continue
			}
			out = append(out, r.s.awards[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}
