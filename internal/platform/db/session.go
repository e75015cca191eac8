package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
)

type sessionCtxKey int

const sessionKey sessionCtxKey = iota

func NewContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext retrieves the session opened for the current request.
func SessionFromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionKey).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

type opKind int

const (
	opInsert opKind = iota + 1
	opUpdate
	opDelete
)

func (k opKind) String() string {
	switch k {
	case opInsert:
		return "insert"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// stagedOp is a write waiting for Commit. Its statement is built at commit
// time so that it sees the entity's latest field values.
type stagedOp struct {
	entity any
	kind   opKind
	build  func() (string, []any)
	track  func() *tracked
}

// tracked is an entity loaded (or written) through the session together
// with the snapshot it is compared against.
type tracked struct {
	entity any
	dirty  func() bool
	update func() (string, []any)
	reset  func()
}

// Session is a unit of work bound to one pooled connection.
// It is not safe to share a session between requests.
type Session struct {
	mu      sync.Mutex
	conn    *sql.Conn
	dialect Dialect
	staged  []stagedOp
	tracked []*tracked
	closed  bool
}

// OpenSession checks a connection out of the pool for the lifetime of the session.
func OpenSession(ctx context.Context, pool *sql.DB, dialect Dialect) (*Session, error) {
	conn, err := pool.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	return &Session{conn: conn, dialect: dialect}, nil
}

func (s *Session) Dialect() Dialect {
	return s.dialect
}

// Close discards pending work and returns the connection to the pool.
// Calling Close more than once is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.staged = nil
	s.tracked = nil

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

func (s *Session) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	return s.conn.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) stage(op stagedOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	s.staged = append(s.staged, op)
	return nil
}

func (s *Session) track(t *tracked) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	for _, existing := range s.tracked {
		if existing.entity == t.entity {
			return nil
		}
	}
	s.tracked = append(s.tracked, t)
	return nil
}

// Pending reports the number of staged operations.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.staged)
}

// Commit writes every staged operation, plus an update for each tracked
// entity that changed since it was loaded, in a single transaction.
// It returns the total number of rows affected. Staged operations are
// discarded whether or not the commit succeeds. When it fails, every entity
// that was part of the rolled back batch is also untracked, so a later
// Commit does not write it again.
func (s *Session) Commit(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}

	staged := s.staged
	s.staged = nil

	ops := append([]stagedOp(nil), staged...)
	for _, t := range s.tracked {
		if t.dirty() && !isStaged(staged, t.entity) {
			ops = append(ops, stagedOp{entity: t.entity, kind: opUpdate, build: t.update})
		}
	}

	if len(ops) == 0 {
		return 0, nil
	}

	var total int64
	err := s.runInTx(ctx, func(tx *sql.Tx) error {
		for _, op := range ops {
			query, args := op.build()
			res, err := tx.ExecContext(ctx, s.dialect.Rebind(query), args...)
			if err != nil {
				return fmt.Errorf("%s: %w", op.kind, err)
			}

			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("%s rows affected: %w", op.kind, err)
			}
			total += n
		}
		return nil
	})
	if err != nil {
		for _, op := range ops {
			s.untrack(op.entity)
		}
		return 0, fmt.Errorf("commit: %w", err)
	}

	s.settle(ops)

	return total, nil
}

// settle brings tracking in line with what was just written.
func (s *Session) settle(ops []stagedOp) {
	for _, op := range ops {
		switch op.kind {
		case opDelete:
			s.untrack(op.entity)
		case opInsert:
			if op.track != nil {
				s.addTracked(op.track())
			}
		}
	}

	for _, t := range s.tracked {
		t.reset()
	}
}

func (s *Session) addTracked(t *tracked) {
	for _, existing := range s.tracked {
		if existing.entity == t.entity {
			return
		}
	}
	s.tracked = append(s.tracked, t)
}

func (s *Session) untrack(entity any) {
	kept := s.tracked[:0]
	for _, t := range s.tracked {
		if t.entity != entity {
			kept = append(kept, t)
		}
	}
	s.tracked = kept
}

func (s *Session) runInTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			rollback(tx)
			panic(r)
		}
		if err != nil {
			rollback(tx)
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("commit transaction: %w", err)
		}
	}()

	return fn(tx)
}

func isStaged(ops []stagedOp, entity any) bool {
	for _, op := range ops {
		if op.entity == entity {
			return true
		}
	}
	return false
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		slog.Error("failed to rollback transaction", "reason", err)
	}
}
