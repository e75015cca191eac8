package db

import (
	"fmt"
	"strings"
)

// Column maps one table column to a field of T.
// Value reads the field for writes and filters; Target returns a pointer to
// the field for scanning.
type Column[T any] struct {
	Name   string
	Value  func(*T) any
	Target func(*T) any
}

// Table maps an entity type to a table. Columns are listed in select order.
type Table[T any] struct {
	Name    string
	Key     string
	Columns []Column[T]
}

// Validate reports a structural problem with the mapping.
func (t Table[T]) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: table name is empty", ErrInvalidTable)
	}

	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == "" || c.Value == nil || c.Target == nil {
			return fmt.Errorf("%w: column %q of %s is incomplete", ErrInvalidTable, c.Name, t.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate column %q in %s", ErrInvalidTable, c.Name, t.Name)
		}
		seen[c.Name] = true
	}

	if !seen[t.Key] {
		return fmt.Errorf("%w: key %q is not a column of %s", ErrInvalidTable, t.Key, t.Name)
	}

	return nil
}

func (t Table[T]) column(name string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column[T]{}, false
}

func (t Table[T]) names() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

func (t Table[T]) values(e *T) []any {
	vals := make([]any, 0, len(t.Columns))
	for _, c := range t.Columns {
		vals = append(vals, c.Value(e))
	}
	return vals
}

func (t Table[T]) targets(e *T) []any {
	targets := make([]any, 0, len(t.Columns))
	for _, c := range t.Columns {
		targets = append(targets, c.Target(e))
	}
	return targets
}

func (t Table[T]) keyValue(e *T) any {
	c, _ := t.column(t.Key)
	return c.Value(e)
}

func (t Table[T]) selectQuery(where []clause, limit int) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(t.names(), ", "))
	b.WriteString(" FROM ")
	b.WriteString(t.Name)

	args := make([]any, 0, len(where))
	for i, w := range where {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(w.column)
		b.WriteString(" = ?")
		args = append(args, w.value)
	}

	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}

	return b.String(), args
}

func (t Table[T]) insertQuery(e *T) (string, []any) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, strings.Join(t.names(), ", "), placeholders)
	return query, t.values(e)
}

func (t Table[T]) updateQuery(e *T) (string, []any) {
	sets := make([]string, 0, len(t.Columns))
	args := make([]any, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == t.Key {
			continue
		}
		sets = append(sets, c.Name+" = ?")
		args = append(args, c.Value(e))
	}
	args = append(args, t.keyValue(e))

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", t.Name, strings.Join(sets, ", "), t.Key)
	return query, args
}

func (t Table[T]) deleteQuery(e *T) (string, []any) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.Name, t.Key)
	return query, []any{t.keyValue(e)}
}
