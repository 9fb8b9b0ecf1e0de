package database

import (
	"fmt"
	"strings"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case Postgres, SQLite:
		return d, nil
	case "pgx", "postgresql":
		return Postgres, nil
	case "sqlite3":
		return SQLite, nil
	}

	return "", fmt.Errorf("unsupported database driver %q", s)
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite"
	}

	return "pgx"
}

// Rebind rewrites $N placeholders into ?N for SQLite. Queries are written
// in Postgres style throughout the stores.
func (d Dialect) Rebind(query string) string {
	if d != SQLite || !strings.Contains(query, "$") {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			sb.WriteByte('?')
			continue
		}

		sb.WriteByte(c)
	}

	return sb.String()
}
