// Package user manages user accounts: the entity, its transport shapes,
// the service rules and the HTTP handler.
package user

import (
	"log/slog"

	"github.com/ferdiebergado/usersvc/internal/platform/db"
	"github.com/google/uuid"
)

const maskChar = "*"

type User struct {
	ID       uuid.UUID
	Name     string
	SurName  string
	Email    string
	Password string
}

const (
	ColumnID       = "id"
	ColumnName     = "name"
	ColumnSurName  = "sur_name"
	ColumnEmail    = "email"
	ColumnPassword = "password"
)

// Table maps User to the users table.
var Table = db.Table[User]{
	Name: "users",
	Key:  ColumnID,
	Columns: []db.Column[User]{
		{Name: ColumnID, Value: func(u *User) any { return u.ID }, Target: func(u *User) any { return &u.ID }},
		{Name: ColumnName, Value: func(u *User) any { return u.Name }, Target: func(u *User) any { return &u.Name }},
		{Name: ColumnSurName, Value: func(u *User) any { return u.SurName }, Target: func(u *User) any { return &u.SurName }},
		{Name: ColumnEmail, Value: func(u *User) any { return u.Email }, Target: func(u *User) any { return &u.Email }},
		{Name: ColumnPassword, Value: func(u *User) any { return u.Password }, Target: func(u *User) any { return &u.Password }},
	},
}

// UserView is the read side shape of a user. It never carries the password.
type UserView struct {
	UserUID  uuid.UUID `json:"user_uid"`
	Name     string    `json:"name"`
	LastName string    `json:"last_name"`
	Email    string    `json:"email"`
}

type CreateUserRequest struct {
	Name     string `json:"name,omitempty" validate:"required,max=100"`
	LastName string `json:"last_name,omitempty" validate:"required,max=100"`
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=8"`
}

func (r CreateUserRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", r.Name),
		slog.String("last_name", r.LastName),
		slog.String("email", r.Email),
		slog.String("password", maskChar),
	)
}

type UpdateNameRequest struct {
	Name string `json:"name,omitempty" validate:"required,max=100"`
}
