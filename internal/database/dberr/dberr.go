// Package dberr classifies driver errors independently of the SQL dialect.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// invalidTextRepresentation is raised by postgres for a literal that does not
// parse as the column type, e.g. "abc" compared with a UUID column.
const invalidTextRepresentation = "22P02"

// IsDuplicateKey reports whether err is a unique constraint violation.
// Connections opened with TranslateError return gorm.ErrDuplicatedKey;
// the message check covers raw driver errors.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// IsInvalidInput reports whether err is postgres rejecting a malformed literal.
// Repositories treat it as "no such row".
func IsInvalidInput(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
