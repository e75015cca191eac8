package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferdiebergado/usersvc/internal/platform/db"
	"github.com/ferdiebergado/usersvc/internal/platform/hash"
	"github.com/google/uuid"
)

// PaymentGateway reports whether the owner of an email has unsettled payments.
type PaymentGateway interface {
	HasPendingPayments(ctx context.Context, email string) (bool, error)
}

type service struct {
	repo     db.Repository[User]
	payments PaymentGateway
	hasher   hash.Hasher
	mapper   Mapper
}

var _ Service = (*service)(nil)

func NewService(repo db.Repository[User], payments PaymentGateway, hasher hash.Hasher) *service {
	return &service{
		repo:     repo,
		payments: payments,
		hasher:   hasher,
	}
}

func (s *service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.QueryUntracked().All(ctx)
	if err != nil {
		return nil, storageErr(fmt.Errorf("list users: %w", err))
	}
	return ToViews(users), nil
}

// GetUser returns nil without an error when no user has the given id.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserView, error) {
	u, err := s.repo.QueryUntracked().Where(ColumnID, id).Single(ctx)
	if err != nil {
		if errors.Is(err, db.ErrAmbiguous) {
			return nil, &Error{Kind: KindAmbiguous, ID: id, Err: err}
		}
		return nil, storageErr(fmt.Errorf("find user %s: %w", id, err))
	}

	if u == nil {
		return nil, nil
	}

	view := ToView(u)
	return &view, nil
}

// CreateUser stores a new user unless the email is taken. The check and the
// insert are not serialized, so two concurrent requests with the same email
// can both succeed.
func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (UserView, error) {
	existing, err := s.repo.QueryUntracked().Where(ColumnEmail, req.Email).All(ctx)
	if err != nil {
		return UserView{}, storageErr(fmt.Errorf("find user by email: %w", err))
	}

	if len(existing) > 0 {
		return UserView{}, &Error{Kind: KindDuplicateEmail, Email: req.Email}
	}

	u := s.mapper.FromCreateRequest(req)

	hashed, err := s.hasher.Hash(u.Password)
	if err != nil {
		return UserView{}, fmt.Errorf("hash password: %w", err)
	}
	u.Password = hashed

	if err := s.repo.Add(ctx, &u); err != nil {
		return UserView{}, storageErr(fmt.Errorf("add user: %w", err))
	}

	if _, err := s.repo.Commit(ctx); err != nil {
		return UserView{}, storageErr(fmt.Errorf("commit new user: %w", err))
	}

	return ToView(&u), nil
}

// DeleteUser removes a user that has no pending payments.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	pending, err := s.payments.HasPendingPayments(ctx, u.Email)
	if err != nil {
		return &Error{Kind: KindCollaborator, Email: u.Email, ID: id, Err: err}
	}

	if pending {
		return &Error{Kind: KindHasPendingPayments, Email: u.Email, ID: id}
	}

	if err := s.repo.Delete(ctx, u); err != nil {
		return storageErr(fmt.Errorf("delete user %s: %w", id, err))
	}

	if _, err := s.repo.Commit(ctx); err != nil {
		return storageErr(fmt.Errorf("commit delete of user %s: %w", id, err))
	}

	return nil
}

// UpdateName changes only the given name of a user.
func (s *service) UpdateName(ctx context.Context, id uuid.UUID, name string) (UserView, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserView{}, err
	}

	u.Name = name

	if err := s.repo.Update(ctx, u); err != nil {
		return UserView{}, storageErr(fmt.Errorf("update user %s: %w", id, err))
	}

	if _, err := s.repo.Commit(ctx); err != nil {
		return UserView{}, storageErr(fmt.Errorf("commit name of user %s: %w", id, err))
	}

	return ToView(u), nil
}

// find loads a tracked user by id and fails with KindNotFound when absent.
func (s *service) find(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.Query().Where(ColumnID, id).Single(ctx)
	if err != nil {
		if errors.Is(err, db.ErrAmbiguous) {
			return nil, &Error{Kind: KindAmbiguous, ID: id, Err: err}
		}
		return nil, storageErr(fmt.Errorf("find user %s: %w", id, err))
	}

	if u == nil {
		return nil, &Error{Kind: KindNotFound, ID: id}
	}
	return u, nil
}
