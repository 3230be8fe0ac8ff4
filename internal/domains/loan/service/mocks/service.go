// Package mocks provides a testify double for the Loan Service.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/utils"
)

type Service struct {
	mock.Mock
}

var _ service.ServiceInterface = (*Service)(nil)

func (m *Service) Borrow(ctx context.Context, bookID string, userID int) (*model.BorrowResult, error) {
	args := m.Called(ctx, bookID, userID)
	if r := args.Get(0); r != nil {
		return r.(*model.BorrowResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) Return(ctx context.Context, bookID string, userID int) (*model.ReturnResult, error) {
	args := m.Called(ctx, bookID, userID)
	if r := args.Get(0); r != nil {
		return r.(*model.ReturnResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) GetBorrowStatus(ctx context.Context, bookID string, userID int) (*model.BorrowStatus, error) {
	args := m.Called(ctx, bookID, userID)
	if r := args.Get(0); r != nil {
		return r.(*model.BorrowStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) GetBorrowStatusBatch(ctx context.Context, bookIDs []string, userID int) (map[string]model.BorrowStatus, error) {
	args := m.Called(ctx, bookIDs, userID)
	if r := args.Get(0); r != nil {
		return r.(map[string]model.BorrowStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) GetAvailableCount(ctx context.Context, bookID string) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func (m *Service) UserBorrowedBooks(ctx context.Context, userID int) ([]model.BorrowedBook, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]model.BorrowedBook), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) UserReturnedBooks(ctx context.Context, userID int) ([]model.ReturnedBook, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]model.ReturnedBook), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) UserLoanHistory(ctx context.Context, userID int, req model.HistoryRequest) (*utils.PagedResult[model.LoanHistoryItem], error) {
	args := m.Called(ctx, userID, req)
	if r := args.Get(0); r != nil {
		return r.(*utils.PagedResult[model.LoanHistoryItem]), args.Error(1)
	}
	return nil, args.Error(1)
}
