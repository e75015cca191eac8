package db

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"
)

type StubRepository[T any] struct {
	QueryFunc          func() Query[T]
	QueryUntrackedFunc func() Query[T]
	AddFunc            func(ctx context.Context, entity *T) error
	UpdateFunc         func(ctx context.Context, entity *T) error
	DeleteFunc         func(ctx context.Context, entity *T) error
	CommitFunc         func(ctx context.Context) (int64, error)
}

var _ Repository[struct{}] = (*StubRepository[struct{}])(nil)

func (s *StubRepository[T]) Query() Query[T] {
	if s.QueryFunc == nil {
		return &SliceQuery[T]{Err: errors.New("Query not implemented by stub")}
	}
	return s.QueryFunc()
}

func (s *StubRepository[T]) QueryUntracked() Query[T] {
	if s.QueryUntrackedFunc == nil {
		return &SliceQuery[T]{Err: errors.New("QueryUntracked not implemented by stub")}
	}
	return s.QueryUntrackedFunc()
}

func (s *StubRepository[T]) Add(ctx context.Context, entity *T) error {
	if s.AddFunc == nil {
		return errors.New("Add not implemented by stub")
	}
	return s.AddFunc(ctx, entity)
}

func (s *StubRepository[T]) Update(ctx context.Context, entity *T) error {
	if s.UpdateFunc == nil {
		return errors.New("Update not implemented by stub")
	}
	return s.UpdateFunc(ctx, entity)
}

func (s *StubRepository[T]) Delete(ctx context.Context, entity *T) error {
	if s.DeleteFunc == nil {
		return errors.New("Delete not implemented by stub")
	}
	return s.DeleteFunc(ctx, entity)
}

func (s *StubRepository[T]) Commit(ctx context.Context) (int64, error) {
	if s.CommitFunc == nil {
		return 0, errors.New("Commit not implemented by stub")
	}
	return s.CommitFunc(ctx)
}

// SliceQuery is an in-memory Query over Rows. Filters compare the values
// returned by the table's column accessors. A non-nil Err is returned by
// every terminal call.
type SliceQuery[T any] struct {
	Table Table[T]
	Rows  []*T
	Err   error

	where []clause
}

var _ Query[struct{}] = (*SliceQuery[struct{}])(nil)

func (q *SliceQuery[T]) Where(column string, value any) Query[T] {
	next := &SliceQuery[T]{
		Table: q.Table,
		Rows:  q.Rows,
		Err:   q.Err,
		where: append(append([]clause(nil), q.where...), clause{column, value}),
	}
	if _, ok := q.Table.column(column); !ok && next.Err == nil {
		next.Err = fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return next
}

func (q *SliceQuery[T]) All(ctx context.Context) ([]*T, error) {
	var all []*T
	for e, err := range q.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		all = append(all, e)
	}
	return all, nil
}

func (q *SliceQuery[T]) Single(ctx context.Context) (*T, error) {
	all, err := q.All(ctx)
	if err != nil {
		return nil, err
	}

	switch len(all) {
	case 0:
		return nil, nil
	case 1:
		return all[0], nil
	default:
		return nil, ErrAmbiguous
	}
}

func (q *SliceQuery[T]) Seq(_ context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		if q.Err != nil {
			yield(nil, q.Err)
			return
		}

		for _, row := range q.Rows {
			if !q.matches(row) {
				continue
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

func (q *SliceQuery[T]) matches(row *T) bool {
	for _, w := range q.where {
		c, _ := q.Table.column(w.column)
		if !reflect.DeepEqual(c.Value(row), w.value) {
			return false
		}
	}
	return true
}
