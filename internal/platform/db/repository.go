package db

import (
	"context"
	"fmt"
	"iter"
	"reflect"
)

// Repository gives typed access to the rows of one table. Reads go through
// the session on the context; writes are staged there until Commit.
type Repository[T any] interface {
	// Query starts a read whose results are tracked for changes.
	Query() Query[T]
	// QueryUntracked starts a read whose results are not tracked.
	QueryUntracked() Query[T]
	Add(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	Commit(ctx context.Context) (int64, error)
}

// Query is a lazily evaluated read. Nothing touches the store until one of
// All, Single or Seq is called.
type Query[T any] interface {
	Where(column string, value any) Query[T]
	All(ctx context.Context) ([]*T, error)
	// Single returns nil and no error when nothing matches and
	// ErrAmbiguous when more than one row matches.
	Single(ctx context.Context) (*T, error)
	Seq(ctx context.Context) iter.Seq2[*T, error]
}

type SQLRepository[T any] struct {
	table Table[T]
}

var _ Repository[struct{}] = (*SQLRepository[struct{}])(nil)

func NewRepository[T any](table Table[T]) (*SQLRepository[T], error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &SQLRepository[T]{table: table}, nil
}

func (r *SQLRepository[T]) Query() Query[T] {
	return &sqlQuery[T]{table: r.table, tracked: true}
}

func (r *SQLRepository[T]) QueryUntracked() Query[T] {
	return &sqlQuery[T]{table: r.table}
}

func (r *SQLRepository[T]) Add(ctx context.Context, entity *T) error {
	return r.stage(ctx, opInsert, entity, func() (string, []any) {
		return r.table.insertQuery(entity)
	})
}

func (r *SQLRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.stage(ctx, opUpdate, entity, func() (string, []any) {
		return r.table.updateQuery(entity)
	})
}

func (r *SQLRepository[T]) Delete(ctx context.Context, entity *T) error {
	return r.stage(ctx, opDelete, entity, func() (string, []any) {
		return r.table.deleteQuery(entity)
	})
}

func (r *SQLRepository[T]) Commit(ctx context.Context) (int64, error) {
	s, err := SessionFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.Commit(ctx)
}

func (r *SQLRepository[T]) stage(ctx context.Context, kind opKind, entity *T, build func() (string, []any)) error {
	if entity == nil {
		return fmt.Errorf("%s %s: nil entity", kind, r.table.Name)
	}

	s, err := SessionFromContext(ctx)
	if err != nil {
		return err
	}

	return s.stage(stagedOp{
		entity: entity,
		kind:   kind,
		build:  build,
		track:  func() *tracked { return newTracked(r.table, entity) },
	})
}

// newTracked snapshots entity by value. Field values, not pointers into
// shared state, are what is compared at commit time.
func newTracked[T any](table Table[T], entity *T) *tracked {
	snapshot := *entity
	return &tracked{
		entity: entity,
		dirty:  func() bool { return !reflect.DeepEqual(snapshot, *entity) },
		update: func() (string, []any) { return table.updateQuery(entity) },
		reset:  func() { snapshot = *entity },
	}
}

type clause struct {
	column string
	value  any
}

type sqlQuery[T any] struct {
	table   Table[T]
	tracked bool
	where   []clause
	err     error
}

func (q *sqlQuery[T]) Where(column string, value any) Query[T] {
	next := &sqlQuery[T]{
		table:   q.table,
		tracked: q.tracked,
		where:   append(append([]clause(nil), q.where...), clause{column, value}),
		err:     q.err,
	}

	if _, ok := q.table.column(column); !ok && next.err == nil {
		next.err = fmt.Errorf("%w: %q in %s", ErrUnknownColumn, column, q.table.Name)
	}

	return next
}

func (q *sqlQuery[T]) All(ctx context.Context) ([]*T, error) {
	var all []*T
	for e, err := range q.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		all = append(all, e)
	}
	return all, nil
}

func (q *sqlQuery[T]) Single(ctx context.Context) (*T, error) {
	var found *T
	for e, err := range q.seq(ctx, 2) {
		if err != nil {
			return nil, err
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguous, q.table.Name)
		}
		found = e
	}
	return found, nil
}

func (q *sqlQuery[T]) Seq(ctx context.Context) iter.Seq2[*T, error] {
	return q.seq(ctx, 0)
}

func (q *sqlQuery[T]) seq(ctx context.Context, limit int) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		if q.err != nil {
			yield(nil, q.err)
			return
		}

		s, err := SessionFromContext(ctx)
		if err != nil {
			yield(nil, err)
			return
		}

		query, args := q.table.selectQuery(q.where, limit)
		rows, err := s.query(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("query %s: %w", q.table.Name, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			e := new(T)
			if err := rows.Scan(q.table.targets(e)...); err != nil {
				yield(nil, fmt.Errorf("scan %s: %w", q.table.Name, err))
				return
			}

			if q.tracked {
				if err := s.track(newTracked(q.table, e)); err != nil {
					yield(nil, err)
					return
				}
			}

			if !yield(e, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate %s: %w", q.table.Name, err))
		}
	}
}
