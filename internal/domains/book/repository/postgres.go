package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"
)

const (
	constraintISBN           = "ux_books_isbn"
	constraintNameAuthorISBN = "ux_books_name_author_isbn"
	selectBookColumns        = `id, name, author, issue_year, isbn, number_of_pieces, created_at`
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) WithTx(tx pgx.Tx) RepositoryInterface {
	return &postgresRepository{db: tx}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Name, &b.Author, &b.IssueYear, &b.ISBN, &b.NumberOfPieces, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) getByID(ctx context.Context, id, suffix string) (*model.Book, error) {
	query := `SELECT ` + selectBookColumns + ` FROM books WHERE id = $1` + suffix

	book, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get book %s: %w", id, err)
	}
	return book, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	return r.getByID(ctx, id, "")
}

func (r *postgresRepository) LockByID(ctx context.Context, id string) (*model.Book, error) {
	return r.getByID(ctx, id, " FOR UPDATE")
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Book, error) {
	if len(ids) == 0 {
		return []model.Book{}, nil
	}

	query := `SELECT ` + selectBookColumns + ` FROM books WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get books by ids: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, len(ids))
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByNameAuthorISBN(ctx context.Context, name, author, isbn string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE name = $1 AND author = $2 AND isbn = $3)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name, author, isbn).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book uniqueness: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, name, author, issue_year, isbn, number_of_pieces)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		book.ID, book.Name, book.Author, book.IssueYear, book.ISBN, book.NumberOfPieces,
	).Scan(&book.CreatedAt)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, constraintNameAuthorISBN):
			return model.NewDuplicateBookError(book.Name, book.Author, book.ISBN).Wrap(err)
		case database.IsUniqueViolation(err, constraintISBN):
			return model.NewISBNTakenError(book.ISBN).Wrap(err)
		}
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetFiltered(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	q, err := buildFilterQueries(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build book query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}
	if total == 0 {
		return []model.Book{}, 0, nil
	}

	rows, err := r.db.Query(ctx, q.listSQL, q.listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, filter.PageSize)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) NameSuggestions(ctx context.Context, prefix string) ([]string, error) {
	return r.suggest(ctx, "name", prefix)
}

func (r *postgresRepository) AuthorSuggestions(ctx context.Context, prefix string) ([]string, error) {
	return r.suggest(ctx, "author", prefix)
}

func (r *postgresRepository) suggest(ctx context.Context, column, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}

	query, args, err := buildSuggestionQuery(column, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s suggestions: %w", column, err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s suggestions: %w", column, err)
	}
	return values, nil
}
