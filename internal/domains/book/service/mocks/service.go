// Package mocks provides a testify double for the Catalog Service.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/utils"
)

type Service struct {
	mock.Mock
}

var _ service.ServiceInterface = (*Service)(nil)

func (m *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*model.BookResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) ListBooks(ctx context.Context, req model.ListBooksRequest) (*utils.PagedResult[model.BookResponse], error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*utils.PagedResult[model.BookResponse]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) NameSuggestions(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if r := args.Get(0); r != nil {
		return r.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) AuthorSuggestions(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if r := args.Get(0); r != nil {
		return r.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
