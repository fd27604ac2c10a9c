package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a community event with a fixed number of seats.
// Registrants is populated only by reads that ask for it.
type Event struct {
	ID              uuid.UUID
	Title           string
	Date            time.Time
	Description     string
	MaxUsers        int
	RegisteredUsers int
	CreatedAt       time.Time
	Registrants     []string
}

// Full reports whether every seat is taken.
func (e *Event) Full() bool {
	return e.RegisteredUsers >= e.MaxUsers
}

// SeatsLeft returns the number of free seats.
func (e *Event) SeatsLeft() int {
	return max(e.MaxUsers-e.RegisteredUsers, 0)
}

// IsRegistered reports whether userID holds a seat.
func (e *Event) IsRegistered(userID string) bool {
	for _, u := range e.Registrants {
		if u == userID {
			return true
		}
	}
	return false
}

// RegistrationResult is the outcome of Register.
type RegistrationResult struct {
	Success bool
	Event   *Event
}
