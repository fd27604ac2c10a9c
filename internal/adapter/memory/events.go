package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// EventRepo stores events and their registrations.
type EventRepo struct {
	s *Store
}

// Events returns the event repository of the store.
func (s *Store) Events() *EventRepo { return &EventRepo{s: s} }

// Create appends an event.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.s.write(ctx, func(t *txn) error {
		if _, ok := r.s.eventIndex[e.ID]; ok {
			return fmt.Errorf("event %s: %w", e.ID, domain.ErrAlreadyExists)
		}
		row := *e
		row.Registrants = nil
		r.s.events = append(r.s.events, &row)
		r.s.eventIndex[row.ID] = &row
		t.onRollback(func() {
			r.s.events = r.s.events[:len(r.s.events)-1]
			delete(r.s.eventIndex, row.ID)
		})
		return nil
	})
}

// GetByID returns an event with its registrants.
func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var out *domain.Event
	err := r.s.read(ctx, func() error {
		row, ok := r.s.eventIndex[id]
		if !ok {
			return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		out = r.copyEvent(row)
		return nil
	})
	return out, err
}

// GetForUpdate returns an event for a check-then-register sequence.
func (r *EventRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

// AddRegistration takes one seat of the event for userID.
func (r *EventRepo) AddRegistration(ctx context.Context, eventID uuid.UUID, userID string, _ time.Time) error {
	return r.s.write(ctx, func(t *txn) error {
		row, ok := r.s.eventIndex[eventID]
		if !ok {
			return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		users := r.s.registrations[eventID]
		if slices.Contains(users, userID) {
			return fmt.Errorf("registration %s/%s: %w", eventID, userID, domain.ErrAlreadyExists)
		}
		if row.RegisteredUsers >= row.MaxUsers {
			return fmt.Errorf("event %s: %w", eventID, domain.ErrConflict)
		}

		r.s.registrations[eventID] = append(users, userID)
		row.RegisteredUsers++
		t.onRollback(func() {
			row.RegisteredUsers--
			r.s.registrations[eventID] = users
		})
		return nil
	})
}

// List returns every event in creation order with registrants.
func (r *EventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	err := r.s.read(ctx, func() error {
		out = make([]*domain.Event, 0, len(r.s.events))
		for _, row := range r.s.events {
			out = append(out, r.copyEvent(row))
		}
		return nil
	})
	return out, err
}

// Count returns the number of events.
func (r *EventRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.read(ctx, func() error {
		n = len(r.s.events)
		return nil
	})
	return n, err
}

func (r *EventRepo) copyEvent(row *domain.Event) *domain.Event {
	e := *row
	e.Registrants = slices.Clone(r.s.registrations[row.ID])
	return &e
}
