package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	// ErrNumericOutOfRange is a value too large for its NUMERIC column.
	ErrNumericOutOfRange   = errors.New("numeric value out of range")
)

// Postgres SQLSTATE codes for integrity constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// Constraint maps a driver error to one of the sentinels above,
// or returns nil when err is not a constraint violation.
func Constraint(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrUniqueViolation
		case pgForeignKeyViolation:
			return ErrForeignKeyViolation
		case pgCheckViolation:
			return ErrCheckViolation
		case pgNumericOutOfRange:
			return ErrNumericOutOfRange
		}

		return nil
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ErrUniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ErrForeignKeyViolation
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return ErrCheckViolation
		}

		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return constraintFromMessage(liteErr.Error())
		}
	}

	return nil
}

func constraintFromMessage(msg string) error {
	switch {
	case strings.Contains(msg, "UNIQUE"):
		return ErrUniqueViolation
	case strings.Contains(msg, "FOREIGN KEY"):
		return ErrForeignKeyViolation
	case strings.Contains(msg, "CHECK"):
		return ErrCheckViolation
	}

	return nil
}

func IsUniqueViolation(err error) bool     { return Constraint(err) == ErrUniqueViolation }
func IsForeignKeyViolation(err error) bool { return Constraint(err) == ErrForeignKeyViolation }
func IsCheckViolation(err error) bool      { return Constraint(err) == ErrCheckViolation }
func IsNumericOutOfRange(err error) bool   { return Constraint(err) == ErrNumericOutOfRange }
