package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/database"
)

const (
	constraintActiveLoan = "ux_book_loans_active"

	selectJoinedColumns = `l.id, l.book_id, l.user_id, l.borrowed_date, l.returned_date, b.name, b.author, b.isbn`
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

func (r *postgresRepository) ActiveCountByBook(ctx context.Context, bookID string) (int, error) {
	query := `SELECT COUNT(*) FROM book_loans WHERE book_id = $1 AND returned_date IS NULL`

	var count int
	if err := r.db.QueryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active loans for book %s: %w", bookID, err)
	}
	return count, nil
}

func (r *postgresRepository) ActiveCountsByBooks(ctx context.Context, bookIDs []string, userID int) (map[string]model.BookCounts, error) {
	counts := make(map[string]model.BookCounts, len(bookIDs))
	if len(bookIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT book_id,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE user_id = $2)
		FROM book_loans
		WHERE book_id = ANY($1) AND returned_date IS NULL
		GROUP BY book_id
	`

	rows, err := r.db.Query(ctx, query, bookIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookID string
			c      model.BookCounts
		)
		if err := rows.Scan(&bookID, &c.TotalActive, &c.UserActive); err != nil {
			return nil, fmt.Errorf("failed to scan loan counts: %w", err)
		}
		counts[bookID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan counts: %w", err)
	}
	return counts, nil
}

func (r *postgresRepository) OldestActiveLoan(ctx context.Context, bookID string, userID int, lock bool) (*model.Loan, error) {
	query := `
		SELECT id, book_id, user_id, borrowed_date, returned_date
		FROM book_loans
		WHERE book_id = $1 AND user_id = $2 AND returned_date IS NULL
		ORDER BY borrowed_date ASC
		LIMIT 1
	`
	if lock {
		query += ` FOR UPDATE`
	}

	var l model.Loan
	err := r.db.QueryRow(ctx, query, bookID, userID).
		Scan(&l.ID, &l.BookID, &l.UserID, &l.BorrowedDate, &l.ReturnedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active loan: %w", err)
	}
	return &l, nil
}

func (r *postgresRepository) Create(ctx context.Context, loan *model.Loan) error {
	query := `
		INSERT INTO book_loans (id, book_id, user_id, borrowed_date, returned_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, loan.ID, loan.BookID, loan.UserID, loan.BorrowedDate, loan.ReturnedDate)
	if err != nil {
		if database.IsUniqueViolation(err, constraintActiveLoan) {
			return model.NewAlreadyBorrowedError().Wrap(err)
		}
		if database.IsForeignKeyViolation(err) {
			return bookmodel.NewBookNotFoundError(loan.BookID).Wrap(err)
		}
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

func (r *postgresRepository) MarkReturned(ctx context.Context, loanID string, returnedAt time.Time) (bool, error) {
	query := `UPDATE book_loans SET returned_date = $2 WHERE id = $1 AND returned_date IS NULL`

	tag, err := r.db.Exec(ctx, query, loanID, returnedAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark loan %s returned: %w", loanID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepository) UserBorrowed(ctx context.Context, userID int) ([]model.LoanWithBook, error) {
	query := `
		SELECT ` + selectJoinedColumns + `
		FROM book_loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.user_id = $1 AND l.returned_date IS NULL
		ORDER BY l.borrowed_date ASC, l.id ASC
	`
	return r.queryJoined(ctx, query, userID)
}

func (r *postgresRepository) UserReturned(ctx context.Context, userID int) ([]model.LoanWithBook, error) {
	query := `
		SELECT ` + selectJoinedColumns + `
		FROM book_loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.user_id = $1 AND l.returned_date IS NOT NULL
		ORDER BY l.returned_date DESC, l.id ASC
	`
	return r.queryJoined(ctx, query, userID)
}

func (r *postgresRepository) UserHistoryPaged(ctx context.Context, userID int, includeReturned bool, page, size int) ([]model.LoanWithBook, int, error) {
	where := `WHERE l.user_id = $1`
	if !includeReturned {
		where += ` AND l.returned_date IS NULL`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM book_loans l ` + where
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count loan history: %w", err)
	}

	query := `
		SELECT ` + selectJoinedColumns + `
		FROM book_loans l
		JOIN books b ON b.id = l.book_id
		` + where + `
		ORDER BY l.borrowed_date DESC, l.id ASC
		LIMIT $2 OFFSET $3
	`
	items, err := r.queryJoined(ctx, query, userID, size, utils.Offset(page, size))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *postgresRepository) AllUserStats(ctx context.Context) ([]model.UserStats, error) {
	query := `
		SELECT user_id,
		       COUNT(*) FILTER (WHERE returned_date IS NULL),
		       COUNT(*) FILTER (WHERE returned_date IS NOT NULL)
		FROM book_loans
		GROUP BY user_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user stats: %w", err)
	}

	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.UserStats, error) {
		var s model.UserStats
		err := row.Scan(&s.UserID, &s.BorrowedCount, &s.ReturnedCount)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan user stats: %w", err)
	}
	return stats, nil
}

func (r *postgresRepository) queryJoined(ctx context.Context, query string, args ...any) ([]model.LoanWithBook, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	loans := make([]model.LoanWithBook, 0)
	for rows.Next() {
		var l model.LoanWithBook
		err := rows.Scan(&l.ID, &l.BookID, &l.UserID, &l.BorrowedDate, &l.ReturnedDate,
			&l.BookName, &l.BookAuthor, &l.BookISBN)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}
	return loans, nil
}
