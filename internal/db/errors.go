package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrCompanyNotFound is returned when a company does not exist.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrRelationNotFound is returned when a user has no relation to a company.
	ErrRelationNotFound = errors.New("relation not found")

	// ErrDuplicateSlug is returned when a company slug collides with an
	// existing row's slug.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrSlugSpaceExhausted is returned when no free slug variant exists
	// for a company name.
	ErrSlugSpaceExhausted = errors.New("no available slug for company name")
)

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation, optionally restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
