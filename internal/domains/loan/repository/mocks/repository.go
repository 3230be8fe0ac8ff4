// Package mocks provides testify doubles for the Loan Store.
package mocks

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
)

type Repository struct {
	mock.Mock
}

var _ repository.RepositoryInterface = (*Repository)(nil)

func (m *Repository) ActiveCountByBook(ctx context.Context, bookID string) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func (m *Repository) ActiveCountsByBooks(ctx context.Context, bookIDs []string, userID int) (map[string]model.BookCounts, error) {
	args := m.Called(ctx, bookIDs, userID)
	if c := args.Get(0); c != nil {
		return c.(map[string]model.BookCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) OldestActiveLoan(ctx context.Context, bookID string, userID int, lock bool) (*model.Loan, error) {
	args := m.Called(ctx, bookID, userID, lock)
	if l := args.Get(0); l != nil {
		return l.(*model.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Create(ctx context.Context, loan *model.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *Repository) MarkReturned(ctx context.Context, loanID string, returnedAt time.Time) (bool, error) {
	args := m.Called(ctx, loanID, returnedAt)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) UserBorrowed(ctx context.Context, userID int) ([]model.LoanWithBook, error) {
	args := m.Called(ctx, userID)
	return loans(args.Get(0)), args.Error(1)
}

func (m *Repository) UserReturned(ctx context.Context, userID int) ([]model.LoanWithBook, error) {
	args := m.Called(ctx, userID)
	return loans(args.Get(0)), args.Error(1)
}

func (m *Repository) UserHistoryPaged(ctx context.Context, userID int, includeReturned bool, page, size int) ([]model.LoanWithBook, int, error) {
	args := m.Called(ctx, userID, includeReturned, page, size)
	return loans(args.Get(0)), args.Int(1), args.Error(2)
}

func (m *Repository) AllUserStats(ctx context.Context) ([]model.UserStats, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]model.UserStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) WithTx(tx pgx.Tx) repository.RepositoryInterface {
	return m
}

func loans(v interface{}) []model.LoanWithBook {
	if v == nil {
		return nil
	}
	return v.([]model.LoanWithBook)
}
