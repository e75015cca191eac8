package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/usersvc/internal/middleware"
	"github.com/ferdiebergado/usersvc/internal/platform/db"
)

func TestScope(t *testing.T) {
	t.Parallel()

	pool := db.SetupSQLite(t)

	var session *db.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := db.SessionFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		session = s
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	middleware.Scope(pool, db.SQLite)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("rec.Code = %d, want: %d", rec.Code, http.StatusOK)
	}

	if _, err := session.Commit(context.Background()); !errors.Is(err, db.ErrSessionClosed) {
		t.Errorf("Commit() after request error = %v, want: %v", err, db.ErrSessionClosed)
	}
}

func TestScope_ClosesOnPanic(t *testing.T) {
	t.Parallel()

	pool := db.SetupSQLite(t)

	var session *db.Session
	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		session, _ = db.SessionFromContext(r.Context())
		panic("boom")
	})

	func() {
		defer func() { _ = recover() }()
		middleware.Scope(pool, db.SQLite)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))
	}()

	if session == nil {
		t.Fatal("handler did not receive a session")
	}
	if _, err := session.Commit(context.Background()); !errors.Is(err, db.ErrSessionClosed) {
		t.Errorf("Commit() after panic error = %v, want: %v", err, db.ErrSessionClosed)
	}
}
