package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type StubService struct {
	ListUsersFunc  func(ctx context.Context) ([]UserView, error)
	GetUserFunc    func(ctx context.Context, id uuid.UUID) (*UserView, error)
	CreateUserFunc func(ctx context.Context, req CreateUserRequest) (UserView, error)
	DeleteUserFunc func(ctx context.Context, id uuid.UUID) error
	UpdateNameFunc func(ctx context.Context, id uuid.UUID, name string) (UserView, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) ListUsers(ctx context.Context) ([]UserView, error) {
	if s.ListUsersFunc == nil {
		return nil, errors.New("ListUsers() not implemented by stub")
	}
	return s.ListUsersFunc(ctx)
}

func (s *StubService) GetUser(ctx context.Context, id uuid.UUID) (*UserView, error) {
	if s.GetUserFunc == nil {
		return nil, errors.New("GetUser() not implemented by stub")
	}
	return s.GetUserFunc(ctx, id)
}

func (s *StubService) CreateUser(ctx context.Context, req CreateUserRequest) (UserView, error) {
	if s.CreateUserFunc == nil {
		return UserView{}, errors.New("CreateUser() not implemented by stub")
	}
	return s.CreateUserFunc(ctx, req)
}

func (s *StubService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if s.DeleteUserFunc == nil {
		return errors.New("DeleteUser() not implemented by stub")
	}
	return s.DeleteUserFunc(ctx, id)
}

func (s *StubService) UpdateName(ctx context.Context, id uuid.UUID, name string) (UserView, error) {
	if s.UpdateNameFunc == nil {
		return UserView{}, errors.New("UpdateName() not implemented by stub")
	}
	return s.UpdateNameFunc(ctx, id, name)
}
