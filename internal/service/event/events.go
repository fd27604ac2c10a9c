package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// CreateEvent adds an event with a fixed number of seats.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	e := &domain.Event{
		ID:          uuid.New(),
		Title:       input.Title,
		Date:        input.Date.UTC(),
		Description: input.Description,
		MaxUsers:    input.MaxUsers,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.InfoContext(ctx, "event created",
		slog.String("event_id", e.ID.String()),
		slog.Int("max_users", e.MaxUsers),
	)
	return e, nil
}

// GetEvent returns one event with its registrants.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ListEvents returns all events in creation order.
func (s *Service) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
