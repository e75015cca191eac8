package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/usersvc/internal/payment"
	"github.com/ferdiebergado/usersvc/internal/platform/db"
	"github.com/ferdiebergado/usersvc/internal/user"
)

func newSQLiteService(t *testing.T, gw user.PaymentGateway) (user.Service, context.Context) {
	t.Helper()

	conn := db.SetupSQLite(t)
	repo, err := db.NewRepository(user.Table)
	if err != nil {
		t.Fatal(err)
	}

	return user.NewService(repo, gw, prefixHasher), db.SessionContext(t, conn)
}

func TestSQLiteService_Lifecycle(t *testing.T) {
	t.Parallel()

	pending := false
	gw := &payment.StubGateway{
		HasPendingPaymentsFunc: func(context.Context, string) (bool, error) { return pending, nil },
	}
	svc, ctx := newSQLiteService(t, gw)

	req := user.CreateUserRequest{Name: "Brian", LastName: "Doe", Email: "brian.doe@test.com", Password: "password"}
	created, err := svc.CreateUser(ctx, req)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if _, err := svc.CreateUser(ctx, req); !errors.Is(err, user.ErrDuplicateEmail) {
		t.Fatalf("second CreateUser() error = %v, want: %v", err, user.ErrDuplicateEmail)
	}

	got, err := svc.GetUser(ctx, created.UserUID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != created {
		t.Fatalf("GetUser() = %+v, want: %+v", got, created)
	}

	renamed, err := svc.UpdateName(ctx, created.UserUID, "Bryan")
	if err != nil {
		t.Fatalf("UpdateName() error = %v", err)
	}
	if renamed.Name != "Bryan" || renamed.LastName != "Doe" || renamed.Email != req.Email {
		t.Errorf("UpdateName() = %+v, want only the name changed", renamed)
	}

	pending = true
	if err := svc.DeleteUser(ctx, created.UserUID); !errors.Is(err, user.ErrHasPendingPayments) {
		t.Fatalf("DeleteUser() error = %v, want: %v", err, user.ErrHasPendingPayments)
	}

	all, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0] != renamed {
		t.Fatalf("ListUsers() = %+v, want: [%+v]", all, renamed)
	}

	pending = false
	if err := svc.DeleteUser(ctx, created.UserUID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	got, err = svc.GetUser(ctx, created.UserUID)
	if err != nil || got != nil {
		t.Errorf("GetUser() after delete = %+v, %v, want: nil, nil", got, err)
	}

	if err := svc.DeleteUser(ctx, created.UserUID); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("DeleteUser() of deleted user error = %v, want: %v", err, user.ErrNotFound)
	}
}

func TestSQLiteService_StoresHashedPassword(t *testing.T) {
	t.Parallel()

	conn := db.SetupSQLite(t)
	repo, err := db.NewRepository(user.Table)
	if err != nil {
		t.Fatal(err)
	}
	svc := user.NewService(repo, noPayments(t), prefixHasher)
	ctx := db.SessionContext(t, conn)

	created, err := svc.CreateUser(ctx, user.CreateUserRequest{Name: "A", LastName: "B", Email: "a@test.com", Password: "secret123"})
	if err != nil {
		t.Fatal(err)
	}

	var stored string
	if err := conn.QueryRow("SELECT password FROM users WHERE id = ?", created.UserUID).Scan(&stored); err != nil {
		t.Fatal(err)
	}
	if stored != "hashed:secret123" {
		t.Errorf("stored password = %q, want: %q", stored, "hashed:secret123")
	}
}

func TestSQLiteService_NoSession(t *testing.T) {
	t.Parallel()

	db.SetupSQLite(t)
	repo, err := db.NewRepository(user.Table)
	if err != nil {
		t.Fatal(err)
	}
	svc := user.NewService(repo, noPayments(t), prefixHasher)

	_, err = svc.ListUsers(context.Background())
	if !errors.Is(err, user.ErrStorage) || !errors.Is(err, db.ErrNoSession) {
		t.Errorf("ListUsers() error = %v, want storage failure wrapping %v", err, db.ErrNoSession)
	}
}
