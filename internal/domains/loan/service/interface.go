package service

import (
	"context"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/utils"
)

// ServiceInterface is the Loan Service.
type ServiceInterface interface {
	Borrow(ctx context.Context, bookID string, userID int) (*model.BorrowResult, error)
	Return(ctx context.Context, bookID string, userID int) (*model.ReturnResult, error)

	GetBorrowStatus(ctx context.Context, bookID string, userID int) (*model.BorrowStatus, error)
	// GetBorrowStatusBatch returns statuses keyed by book id; unknown ids
	// are left out.
	GetBorrowStatusBatch(ctx context.Context, bookIDs []string, userID int) (map[string]model.BorrowStatus, error)
	GetAvailableCount(ctx context.Context, bookID string) (int, error)

	UserBorrowedBooks(ctx context.Context, userID int) ([]model.BorrowedBook, error)
	UserReturnedBooks(ctx context.Context, userID int) ([]model.ReturnedBook, error)
	UserLoanHistory(ctx context.Context, userID int, req model.HistoryRequest) (*utils.PagedResult[model.LoanHistoryItem], error)
}
