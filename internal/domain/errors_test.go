package domain

import (
	"context"
	"errors"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "required")

	if got := err.Error(); got != "validation: title: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "title", Message: "required"},
		{Field: "category", Message: "unknown category"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestCapacityError_Unwrap(t *testing.T) {
	t.Parallel()

	var err error = &CapacityError{EventID: "e1", MaxUsers: 2}
	if !errors.Is(err, ErrCapacity) {
		t.Fatal("errors.Is(err, ErrCapacity) = false")
	}

	var ce *CapacityError
	if !errors.As(err, &ce) || ce.MaxUsers != 2 {
		t.Fatalf("errors.As failed: %v", err)
	}
}

func TestStoreError_MatchesKindAndCause(t *testing.T) {
	t.Parallel()

	err := NewStoreError("insert discussion", context.DeadlineExceeded)

	if !errors.Is(err, ErrStore) {
		t.Error("errors.Is(err, ErrStore) = false")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("cause should stay reachable")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("store error must not match ErrNotFound")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation, ErrConflict,
		ErrCapacity, ErrAlreadyRegistered, ErrStore,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
