package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors. Anything that is not
// a missing row or a known constraint violation becomes a *domain.StoreError.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrConflict)
		}
	}

	return domain.NewStoreError(fmt.Sprintf("%s %v", entity, key), err)
}

// StoreError wraps a failure of a statement that has no entity key, such as
// building SQL or scanning a list.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return domain.NewStoreError(op, err)
}
