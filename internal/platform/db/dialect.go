package db

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Dialect describes how queries are written for a database driver.
// Queries are authored with "?" placeholders and rebound for drivers that
// expect numbered placeholders.
type Dialect struct {
	Driver   string
	numbered bool
}

var (
	Postgres = Dialect{Driver: DriverPostgres, numbered: true}
	SQLite   = Dialect{Driver: DriverSQLite}
)

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres:
		return Postgres, nil
	case DriverSQLite:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Rebind converts "?" placeholders to the dialect's placeholder style.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
