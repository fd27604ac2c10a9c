// Package dataloader provides per-request DataLoaders that batch contributor
// lookups made while rendering discussion listings into single store calls.
package dataloader

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/community-engine/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type contributorRepo interface {
	GetByNames(ctx context.Context, names []string) ([]*domain.Contributor, error)
}

// Repos holds the repositories and settings required by the loaders.
type Repos struct {
	Contributors contributorRepo
	Thresholds   domain.BadgeThresholds
}

// Loaders contains the per-request DataLoaders. Created per-request via NewLoaders.
type Loaders struct {
	// ContributorByName resolves to nil for names without a profile.
	ContributorByName *dataloader.Loader[string, *domain.Contributor]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		ContributorByName: dataloader.NewBatchedLoader(
			newContributorsBatchFn(repos.Contributors, repos.Thresholds),
			dataloader.WithWait[string, *domain.Contributor](wait),
			dataloader.WithBatchCapacity[string, *domain.Contributor](maxBatch),
		),
	}
}

func newContributorsBatchFn(repo contributorRepo, thresholds domain.BadgeThresholds) dataloader.BatchFunc[string, *domain.Contributor] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*domain.Contributor] {
		profiles, err := repo.GetByNames(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[*domain.Contributor], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[*domain.Contributor]{Error: err}
			}
			return results
		}

		byName := make(map[string]*domain.Contributor, len(profiles))
		for _, p := range profiles {
			p.Badge = thresholds.BadgeFor(p.Points)
			byName[p.Name] = p
		}

		results := make([]*dataloader.Result[*domain.Contributor], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Contributor]{Data: byName[key]}
		}
		return results
	}
}

// LoadContributors resolves names through the loaders in ctx in one batch.
// Missing profiles are absent from the returned map.
func LoadContributors(ctx context.Context, names []string) (map[string]*domain.Contributor, error) {
	l := FromContext(ctx)
	if l == nil || len(names) == 0 {
		return map[string]*domain.Contributor{}, nil
	}

	profiles, errs := l.ContributorByName.LoadMany(ctx, names)()
	out := make(map[string]*domain.Contributor, len(names))
	for i, p := range profiles {
		if i < len(errs) && errs[i] != nil {
			return nil, errs[i]
		}
		if p != nil {
			out[names[i]] = p
		}
	}
	return out, nil
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context, or nil when the
// middleware is not installed.
func FromContext(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// Middleware instantiates per-request DataLoaders and stores them in the
// request context.
func Middleware(repos *Repos) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithLoaders(c.Request.Context(), NewLoaders(repos)))
		c.Next()
	}
}
