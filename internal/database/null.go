package database

import "database/sql"

// NullString maps a nil pointer to SQL NULL so optional text columns bind
// the same way on every driver.
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}
