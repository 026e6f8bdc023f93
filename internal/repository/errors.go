package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert collides with a uniqueness
// constraint, e.g. a second holiday on the same date. Seeding treats it as
// an idempotent no-op; interactive callers surface it.
var ErrDuplicate = errors.New("already exists")

// isUniqueViolation detects SQLite uniqueness failures. The driver exposes
// no typed error for this, so the message text is the contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
