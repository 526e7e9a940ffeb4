package repository

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a unique-index rejection from
// the store. Postgres is matched by SQLSTATE; the string fallback covers
// the sqlite driver used for local development.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "SQLSTATE 23505") ||
		strings.Contains(s, "UNIQUE constraint failed")
}

// IsUnavailable reports whether err means the store could not be reached
// at all, as opposed to rejecting the operation. Class 08 is Postgres
// "connection exception".
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08")
	}
	s := err.Error()
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
