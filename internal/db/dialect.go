package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect hides the few places postgres and sqlite disagree.
type Dialect interface {
	Name() string
	// Rebind turns "?" placeholders into the driver's native form.
	Rebind(query string) string
	// Time converts a timestamp into a value the driver stores faithfully.
	Time(t time.Time) any
	// Like returns a case-insensitive LIKE predicate for column; the pattern
	// escapes wildcards with a backslash.
	Like(column string) string
	// ForUpdate is appended to a single-row SELECT inside a transaction.
	ForUpdate() string
	Schema() string
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres:
		return postgresDialect{}, nil
	case DriverSQLite:
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q (want %q or %q)", driver, DriverPostgres, DriverSQLite)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return DriverPostgres }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) Time(t time.Time) any { return t.UTC() }

func (postgresDialect) Like(column string) string { return column + ` ILIKE ? ESCAPE '\'` }

func (postgresDialect) ForUpdate() string { return " FOR UPDATE" }

func (postgresDialect) Schema() string { return postgresSchema }

// TimeLayout is fixed width so sqlite text timestamps sort chronologically.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return DriverSQLite }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) Time(t time.Time) any { return t.UTC().Format(TimeLayout) }

func (sqliteDialect) Like(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '\\'"
}

// sqlite has no row locks; the single pooled connection serializes writers.
func (sqliteDialect) ForUpdate() string { return "" }

func (sqliteDialect) Schema() string { return sqliteSchema }
