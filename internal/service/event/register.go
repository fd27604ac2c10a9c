package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// Register takes one seat of an event for the user and awards
// event_registration points. A full event yields a *domain.CapacityError and
// a repeated registration yields domain.ErrAlreadyRegistered; in both cases
// the result reports Success=false and nothing is changed.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.RegistrationResult, error) {
	input.UserID = domain.NormalizeName(input.UserID)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	result := &domain.RegistrationResult{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.events.GetForUpdate(txCtx, input.EventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		result.Event = e

		if e.IsRegistered(input.UserID) {
			return fmt.Errorf("event %s: %w", e.ID, domain.ErrAlreadyRegistered)
		}
		if e.Full() {
			return &domain.CapacityError{EventID: e.ID.String(), MaxUsers: e.MaxUsers}
		}

		err = s.events.AddRegistration(txCtx, e.ID, input.UserID, time.Now().UTC())
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			return fmt.Errorf("event %s: %w", e.ID, domain.ErrAlreadyRegistered)
		case errors.Is(err, domain.ErrConflict):
			return &domain.CapacityError{EventID: e.ID.String(), MaxUsers: e.MaxUsers}
		case err != nil:
			return fmt.Errorf("add registration: %w", err)
		}

		if _, err := s.points.ApplyPoints(txCtx, input.UserID, domain.PointsEventRegistration, domain.ReasonEventRegistration); err != nil {
			return fmt.Errorf("award registration: %w", err)
		}

		e.RegisteredUsers++
		e.Registrants = append(e.Registrants, input.UserID)
		return nil
	})

	switch {
	case err == nil:
		result.Success = true
		s.metrics.ObserveRegistration("registered")
	case errors.Is(err, domain.ErrCapacity):
		s.metrics.ObserveRegistration("full")
		return result, err
	case errors.Is(err, domain.ErrAlreadyRegistered):
		s.metrics.ObserveRegistration("duplicate")
		return result, err
	default:
		return nil, err
	}

	s.log.InfoContext(ctx, "event registration",
		slog.String("event_id", input.EventID.String()),
		slog.String("user_id", input.UserID),
		slog.Int("registered", result.Event.RegisteredUsers),
		slog.Int("max", result.Event.MaxUsers),
	)

	return result, nil
}
