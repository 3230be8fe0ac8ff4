package service

import (
	"context"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/utils"
)

// ServiceInterface is the Catalog Service.
type ServiceInterface interface {
	// CreateBook expects an already validated request and enforces only the
	// (name, author, isbn) uniqueness rule.
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	ListBooks(ctx context.Context, req model.ListBooksRequest) (*utils.PagedResult[model.BookResponse], error)
	NameSuggestions(ctx context.Context, prefix string) ([]string, error)
	AuthorSuggestions(ctx context.Context, prefix string) ([]string, error)
}
