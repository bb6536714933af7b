// Package pgerr translates Postgres constraint failures into store sentinels.
// Both the pgx and lib/pq error types are recognised so stores behave the same
// regardless of which driver opened the connection.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"amparo/pkg/platform/sentinel"
)

// SQLSTATE codes for integrity violations.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// state returns the SQLSTATE and constraint name of a driver error.
func state(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

// IsUnique reports whether err is a unique violation.
func IsUnique(err error) bool {
	code, _, ok := state(err)
	return ok && code == UniqueViolation
}

// Translate maps integrity violations to sentinel errors carrying the
// constraint name. Other errors are returned unchanged.
func Translate(err error) error {
	code, constraint, ok := state(err)
	if !ok {
		return err
	}
	switch code {
	case UniqueViolation:
		return sentinel.Violation(sentinel.ErrAlreadyUsed, constraint)
	case ForeignKeyViolation:
		return sentinel.Violation(sentinel.ErrInUse, constraint)
	default:
		return err
	}
}
