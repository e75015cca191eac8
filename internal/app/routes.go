package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/ferdiebergado/usersvc/internal/middleware"
	"github.com/ferdiebergado/usersvc/internal/pkg/message"
	"github.com/ferdiebergado/usersvc/internal/pkg/web"
	"github.com/ferdiebergado/usersvc/internal/platform/router"
	"github.com/ferdiebergado/usersvc/internal/platform/validation"
	"github.com/ferdiebergado/usersvc/internal/user"
)

func mountUserRoutes(r router.Router, h *user.Handler, validator validation.Validator, scope func(http.Handler) http.Handler, maxBytes int64) {
	r.Get("/users", h.ListUsers, scope)
	r.Get("/users/{id}", h.GetUser, scope)
	// Callers cannot choose the id of a new user; any id they send is dropped.
	r.Post("/users", h.CreateUser,
		middleware.DecodePayload[user.CreateUserRequest](maxBytes, middleware.AllowUnknownFields()),
		middleware.ValidateInput[user.CreateUserRequest](validator),
		scope)
	r.Patch("/users/{id}", h.UpdateName,
		middleware.DecodePayload[user.UpdateNameRequest](maxBytes),
		middleware.ValidateInput[user.UpdateNameRequest](validator),
		scope)
	r.Delete("/users/{id}", h.DeleteUser, scope)
}

type healthData struct {
	Database string `json:"database"`
}

// healthCheck reports whether the database answers a ping within timeout.
func healthCheck(conn *sql.DB, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := conn.PingContext(ctx); err != nil {
			web.RespondServiceUnavailable(w, err, message.Unhealthy, map[string]string{"database": "down"})
			return
		}

		msg := message.Healthy
		web.RespondOK(w, &msg, &healthData{Database: "up"})
	}
}
