// Package mocks provides testify doubles for the Catalog Store.
package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

type Repository struct {
	mock.Mock
}

var _ repository.RepositoryInterface = (*Repository)(nil)

func (m *Repository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) LockByID(ctx context.Context, id string) (*model.Book, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) GetByIDs(ctx context.Context, ids []string) ([]model.Book, error) {
	args := m.Called(ctx, ids)
	if b := args.Get(0); b != nil {
		return b.([]model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) ExistsByNameAuthorISBN(ctx context.Context, name, author, isbn string) (bool, error) {
	args := m.Called(ctx, name, author, isbn)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *Repository) GetFiltered(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	args := m.Called(ctx, filter)
	var books []model.Book
	if b := args.Get(0); b != nil {
		books = b.([]model.Book)
	}
	return books, args.Int(1), args.Error(2)
}

func (m *Repository) NameSuggestions(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if s := args.Get(0); s != nil {
		return s.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) AuthorSuggestions(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if s := args.Get(0); s != nil {
		return s.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself so expectations set on it cover
// transactional calls too.
func (m *Repository) WithTx(tx pgx.Tx) repository.RepositoryInterface {
	return m
}
