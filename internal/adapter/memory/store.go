// Package memory implements the community store in process memory.
// Every repository shares one Store; a write transaction holds the store-wide
// lock for its whole duration and undoes its changes on failure.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// Store holds all collections. Use the accessor methods to obtain repositories.
type Store struct {
	mu sync.RWMutex

	discussions     []*domain.Discussion
	discussionIndex map[uuid.UUID]*domain.Discussion

	comments       map[uuid.UUID]*domain.Comment
	threadComments map[uuid.UUID][]uuid.UUID

	reactions map[reactionKey]domain.Reaction

	contributors     map[string]*domain.Contributor
	contributorOrder []string
	awards           []domain.PointAward

	events        []*domain.Event
	eventIndex    map[uuid.UUID]*domain.Event
	registrations map[uuid.UUID][]string

	notifications []domain.AdminNotification
	report        *domain.InsightReport
	notifyState   domain.NotifyState
}

type reactionKey struct {
	commentID uuid.UUID
	userID    string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		discussionIndex: make(map[uuid.UUID]*domain.Discussion),
		comments:        make(map[uuid.UUID]*domain.Comment),
		threadComments:  make(map[uuid.UUID][]uuid.UUID),
		reactions:       make(map[reactionKey]domain.Reaction),
		contributors:    make(map[string]*domain.Contributor),
		eventIndex:      make(map[uuid.UUID]*domain.Event),
		registrations:   make(map[uuid.UUID][]string),
	}
}

// Ping always succeeds; it lets the store serve readiness probes.
func (s *Store) Ping(context.Context) error { return nil }

// txn records undo steps of a write transaction.
type txn struct {
	store *Store
	undo  []func()
}

func (t *txn) onRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

func (t *txn) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

type txCtxKey struct{}

func withTx(ctx context.Context, t *txn) context.Context {
	return context.WithValue(ctx, txCtxKey{}, t)
}

func (s *Store) txFromCtx(ctx context.Context) *txn {
	if t, ok := ctx.Value(txCtxKey{}).(*txn); ok && t.store == s {
		return t
	}
	return nil
}

// write runs fn under the write lock, joining the transaction in ctx if any.
// A standalone write is rolled back when fn fails.
func (s *Store) write(ctx context.Context, fn func(t *txn) error) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreError("write", err)
	}
	if t := s.txFromCtx(ctx); t != nil {
		return fn(t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txn{store: s}
	if err := fn(t); err != nil {
		t.rollback()
		return err
	}
	return nil
}

// read runs fn under the read lock unless ctx already carries a transaction.
func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreError("read", err)
	}
	if s.txFromCtx(ctx) != nil {
		return fn()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}
