package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface is the Catalog Store.
type RepositoryInterface interface {
	// GetByID returns the book or a model.ErrBookNotFound error.
	GetByID(ctx context.Context, id string) (*model.Book, error)

	// LockByID is GetByID with a row lock held until the surrounding
	// transaction ends. Only meaningful on a repository bound with WithTx.
	LockByID(ctx context.Context, id string) (*model.Book, error)

	// GetByIDs returns the books that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]model.Book, error)

	Exists(ctx context.Context, id string) (bool, error)

	ExistsByNameAuthorISBN(ctx context.Context, name, author, isbn string) (bool, error)

	// Create inserts book. Unique violations surface as Conflict errors.
	Create(ctx context.Context, book *model.Book) error

	// GetFiltered returns one page of books plus the total match count.
	GetFiltered(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)

	// NameSuggestions returns up to 20 distinct names starting with prefix.
	NameSuggestions(ctx context.Context, prefix string) ([]string, error)

	// AuthorSuggestions returns up to 20 distinct authors starting with prefix.
	AuthorSuggestions(ctx context.Context, prefix string) ([]string, error)

	// WithTx returns a repository whose statements run inside tx.
	WithTx(tx pgx.Tx) RepositoryInterface
}
