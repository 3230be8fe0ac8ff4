package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/loan/model"
)

// RepositoryInterface is the Loan Store.
type RepositoryInterface interface {
	ActiveCountByBook(ctx context.Context, bookID string) (int, error)
	// ActiveCountsByBooks returns counts keyed by book id. Books without
	// active loans are absent from the map.
	ActiveCountsByBooks(ctx context.Context, bookIDs []string, userID int) (map[string]model.BookCounts, error)
	// OldestActiveLoan returns nil, nil when the user holds no active loan
	// for the book. With lock set the row is locked FOR UPDATE, so it must
	// run inside a transaction.
	OldestActiveLoan(ctx context.Context, bookID string, userID int, lock bool) (*model.Loan, error)
	Create(ctx context.Context, loan *model.Loan) error
	// MarkReturned sets the return date of an active loan. It reports false
	// when the loan was already returned.
	MarkReturned(ctx context.Context, loanID string, returnedAt time.Time) (bool, error)

	UserBorrowed(ctx context.Context, userID int) ([]model.LoanWithBook, error)
	UserReturned(ctx context.Context, userID int) ([]model.LoanWithBook, error)
	UserHistoryPaged(ctx context.Context, userID int, includeReturned bool, page, size int) ([]model.LoanWithBook, int, error)
	AllUserStats(ctx context.Context) ([]model.UserStats, error)

	WithTx(tx pgx.Tx) RepositoryInterface
}
