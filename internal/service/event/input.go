package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// CreateEventInput holds the parameters for creating an event.
type CreateEventInput struct {
	Title       string
	Date        time.Time
	Description string
	MaxUsers    int
}

// Validate checks all fields and collects all errors.
func (i CreateEventInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 200)"})
	}
	if i.MaxUsers <= 0 {
		errs = append(errs, domain.FieldError{Field: "max_users", Message: "must be positive"})
	}
	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegisterInput identifies a seat request.
type RegisterInput struct {
	EventID uuid.UUID
	UserID  string
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	if i.UserID == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
