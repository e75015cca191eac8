package middleware

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/usersvc/internal/pkg/message"
	"github.com/ferdiebergado/usersvc/internal/pkg/web"
	"github.com/ferdiebergado/usersvc/internal/platform/db"
)

// Scope opens a database session for the request and closes it when the
// handler returns, on every path including panics.
func Scope(pool *sql.DB, dialect db.Dialect) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := db.OpenSession(r.Context(), pool, dialect)
			if err != nil {
				web.RespondServiceUnavailable(w, err, message.Unhealthy, nil)
				return
			}

			defer func() {
				if err := session.Close(); err != nil {
					slog.Error("failed to close session", "reason", err)
				}
			}()

			next.ServeHTTP(w, r.WithContext(db.NewContextWithSession(r.Context(), session)))
		})
	}
}
