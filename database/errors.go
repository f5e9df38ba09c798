package database

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505) and, when known, which constraint failed.
// Both drivers are handled: lib/pq surfaces a typed error, pgx (behind the
// GORM postgres driver) is caught via the translated gorm error or the
// SQLSTATE text.
func IsUniqueViolation(err error) (bool, string) {
	if err == nil {
		return false, ""
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true, pqErr.Constraint
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, ""
	}
	msg := err.Error()
	if strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key value") {
		return true, ""
	}
	return false, ""
}
