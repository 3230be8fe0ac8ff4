// Package mocks provides a testify double for the user directory.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
)

type Repository struct {
	mock.Mock
}

var _ repository.RepositoryInterface = (*Repository)(nil)

func (m *Repository) GetByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) ListForAdmin(ctx context.Context, nameFilter string) ([]model.User, error) {
	args := m.Called(ctx, nameFilter)
	if u := args.Get(0); u != nil {
		return u.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}
