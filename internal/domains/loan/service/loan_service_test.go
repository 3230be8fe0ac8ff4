package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bookmodel "library-backend/internal/domains/book/model"
	bookmocks "library-backend/internal/domains/book/repository/mocks"
	"library-backend/internal/domains/loan/model"
	loanmocks "library-backend/internal/domains/loan/repository/mocks"
	"library-backend/internal/shared/apperror"
	dbmocks "library-backend/pkg/database/mocks"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("UTC+2", 2*3600))

type fixture struct {
	txm   *dbmocks.TxManager
	books *bookmocks.Repository
	loans *loanmocks.Repository
	svc   ServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		txm:   &dbmocks.TxManager{},
		books: new(bookmocks.Repository),
		loans: new(loanmocks.Repository),
	}
	f.svc = NewLoanService(f.txm, f.books, f.loans,
		WithLogger(zerolog.Nop()),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "loan-1" }),
	)
	return f
}

func book(id string, pieces int) *bookmodel.Book {
	return &bookmodel.Book{ID: id, Name: "Dune", Author: "Frank Herbert", IssueYear: 1965, ISBN: "9780441013593", NumberOfPieces: pieces}
}

func TestBorrow_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("LockByID", ctx, "b1").Return(book("b1", 2), nil)
	f.loans.On("ActiveCountByBook", ctx, "b1").Return(1, nil)
	f.loans.On("OldestActiveLoan", ctx, "b1", 7, false).Return(nil, nil)
	f.loans.On("Create", ctx, mock.MatchedBy(func(l *model.Loan) bool {
		return l.ID == "loan-1" && l.BookID == "b1" && l.UserID == 7 &&
			l.ReturnedDate == nil && l.BorrowedDate.Location() == time.UTC
	})).Return(nil)

	got, err := f.svc.Borrow(ctx, "b1", 7)
	require.NoError(t, err)
	assert.Equal(t, &model.BorrowResult{
		LoanID:       "loan-1",
		BookID:       "b1",
		UserID:       7,
		BorrowedDate: fixedNow.UTC(),
		Message:      "Book borrowed successfully",
	}, got)
	assert.Equal(t, 1, f.txm.Calls)
	f.books.AssertExpectations(t)
	f.loans.AssertExpectations(t)
}

func TestBorrow_BookNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("LockByID", ctx, "missing").Return(nil, bookmodel.NewBookNotFoundError("missing"))

	_, err := f.svc.Borrow(ctx, "missing", 7)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Book with ID 'missing' not found.", err.Error())
	f.loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBorrow_NoCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("LockByID", ctx, "b1").Return(book("b1", 2), nil)
	f.loans.On("ActiveCountByBook", ctx, "b1").Return(2, nil)

	_, err := f.svc.Borrow(ctx, "b1", 7)
	assert.ErrorIs(t, err, model.ErrNoCopies)
	assert.Equal(t, "No available copies of this book. Currently 2 out of 2 are borrowed.", err.Error())
	f.loans.AssertNotCalled(t, "OldestActiveLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBorrow_ZeroPieces(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("LockByID", ctx, "b1").Return(book("b1", 0), nil)
	f.loans.On("ActiveCountByBook", ctx, "b1").Return(0, nil)

	_, err := f.svc.Borrow(ctx, "b1", 7)
	assert.ErrorIs(t, err, model.ErrNoCopies)
}

func TestBorrow_AlreadyBorrowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("LockByID", ctx, "b1").Return(book("b1", 3), nil)
	f.loans.On("ActiveCountByBook", ctx, "b1").Return(1, nil)
	f.loans.On("OldestActiveLoan", ctx, "b1", 7, false).Return(&model.Loan{ID: "old", BookID: "b1", UserID: 7}, nil)

	_, err := f.svc.Borrow(ctx, "b1", 7)
	assert.ErrorIs(t, err, model.ErrAlreadyBorrowed)
	assert.Equal(t, "You already have this book borrowed.", err.Error())
}

func TestBorrow_StoreErrorKeepsIdentity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dbErr := errors.New("deadlock detected")

	f.books.On("LockByID", ctx, "b1").Return(book("b1", 3), nil)
	f.loans.On("ActiveCountByBook", ctx, "b1").Return(0, dbErr)

	_, err := f.svc.Borrow(ctx, "b1", 7)
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, apperror.KindUnknown, apperror.KindOf(err))
}

func TestBorrow_CancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Borrow(ctx, "b1", 7)
	assert.ErrorIs(t, err, context.Canceled)
	f.books.AssertNotCalled(t, "LockByID", mock.Anything, mock.Anything)
}

func TestReturn_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.loans.On("OldestActiveLoan", ctx, "b1", 7, true).Return(&model.Loan{ID: "l1", BookID: "b1", UserID: 7}, nil)
	f.books.On("GetByID", ctx, "b1").Return(book("b1", 1), nil)
	f.loans.On("MarkReturned", ctx, "l1", fixedNow.UTC()).Return(true, nil)

	got, err := f.svc.Return(ctx, "b1", 7)
	require.NoError(t, err)
	assert.Equal(t, "l1", got.LoanID)
	assert.Equal(t, fixedNow.UTC(), got.ReturnedDate)
	assert.Equal(t, "Book returned successfully", got.Message)
	f.loans.AssertExpectations(t)
}

func TestReturn_NoActiveLoan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.loans.On("OldestActiveLoan", ctx, "b1", 7, true).Return(nil, nil)

	_, err := f.svc.Return(ctx, "b1", 7)
	assert.ErrorIs(t, err, model.ErrNotActive)
	assert.Equal(t, "You don't have an active loan for this book.", err.Error())
	f.books.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReturn_BookGone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.loans.On("OldestActiveLoan", ctx, "b1", 7, true).Return(&model.Loan{ID: "l1", BookID: "b1", UserID: 7}, nil)
	f.books.On("GetByID", ctx, "b1").Return(nil, bookmodel.NewBookNotFoundError("b1"))

	_, err := f.svc.Return(ctx, "b1", 7)
	assert.True(t, apperror.IsNotFound(err))
	f.loans.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything, mock.Anything)
}

func TestReturn_LostRace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.loans.On("OldestActiveLoan", ctx, "b1", 7, true).Return(&model.Loan{ID: "l1", BookID: "b1", UserID: 7}, nil)
	f.books.On("GetByID", ctx, "b1").Return(book("b1", 1), nil)
	f.loans.On("MarkReturned", ctx, "l1", mock.Anything).Return(false, nil)

	_, err := f.svc.Return(ctx, "b1", 7)
	assert.ErrorIs(t, err, model.ErrNotActive)
}

func TestGetBorrowStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("GetByID", ctx, "b1").Return(book("b1", 3), nil)
	f.loans.On("ActiveCountsByBooks", ctx, []string{"b1"}, 7).
		Return(map[string]model.BookCounts{"b1": {TotalActive: 2, UserActive: 1}}, nil)

	got, err := f.svc.GetBorrowStatus(ctx, "b1", 7)
	require.NoError(t, err)
	assert.Equal(t, &model.BorrowStatus{BookID: "b1", IsBorrowedByUser: true, ActiveLoanCount: 1, AvailableCount: 1}, got)
}

func TestGetBorrowStatus_NoLoans(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("GetByID", ctx, "b1").Return(book("b1", 3), nil)
	f.loans.On("ActiveCountsByBooks", ctx, []string{"b1"}, 7).Return(map[string]model.BookCounts{}, nil)

	got, err := f.svc.GetBorrowStatus(ctx, "b1", 7)
	require.NoError(t, err)
	assert.False(t, got.IsBorrowedByUser)
	assert.Equal(t, 3, got.AvailableCount)
}

func TestGetBorrowStatus_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("GetByID", ctx, "x").Return(nil, bookmodel.NewBookNotFoundError("x"))

	_, err := f.svc.GetBorrowStatus(ctx, "x", 7)
	assert.ErrorIs(t, err, bookmodel.ErrBookNotFound)
}

func TestGetBorrowStatusBatch_Empty(t *testing.T) {
	f := newFixture()

	for _, ids := range [][]string{nil, {}, {" ", ""}} {
		got, err := f.svc.GetBorrowStatusBatch(context.Background(), ids, 7)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	f.books.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestGetBorrowStatusBatch_DropsUnknownAndDedupes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("GetByIDs", ctx, []string{"b1", "missing", "b2"}).
		Return([]bookmodel.Book{*book("b1", 1), *book("b2", 4)}, nil)
	f.loans.On("ActiveCountsByBooks", ctx, []string{"b1", "b2"}, 7).
		Return(map[string]model.BookCounts{"b1": {TotalActive: 3, UserActive: 0}}, nil)

	got, err := f.svc.GetBorrowStatusBatch(ctx, []string{"b1", "missing", "b1", "b2"}, 7)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NotContains(t, got, "missing")
	assert.Equal(t, 0, got["b1"].AvailableCount, "over-borrowed books clamp to zero")
	assert.Equal(t, 4, got["b2"].AvailableCount)
}

func TestGetAvailableCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.books.On("GetByID", ctx, "b1").Return(book("b1", 5), nil)
	f.loans.On("ActiveCountByBook", ctx, "b1").Return(2, nil)

	n, err := f.svc.GetAvailableCount(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUserLoanHistory_ClampsPaging(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	returned := fixedNow.UTC()

	f.loans.On("UserHistoryPaged", ctx, 7, true, 1, 100).Return([]model.LoanWithBook{
		{Loan: model.Loan{ID: "l2", BookID: "b2", UserID: 7, BorrowedDate: returned}},
		{Loan: model.Loan{ID: "l1", BookID: "b1", UserID: 7, BorrowedDate: returned, ReturnedDate: &returned}},
	}, 2, nil)

	got, err := f.svc.UserLoanHistory(ctx, 7, model.HistoryRequest{PageNumber: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalCount)
	assert.Equal(t, 1, got.PageNumber)
	assert.Equal(t, 100, got.PageSize)
	assert.False(t, got.Items[0].IsReturned)
	assert.True(t, got.Items[1].IsReturned)
}

func TestUserBorrowedAndReturnedBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.loans.On("UserBorrowed", ctx, 7).Return([]model.LoanWithBook{
		{Loan: model.Loan{ID: "l1", BookID: "b1"}, BookName: "Dune"},
	}, nil)
	f.loans.On("UserReturned", ctx, 7).Return(nil, nil)

	borrowed, err := f.svc.UserBorrowedBooks(ctx, 7)
	require.NoError(t, err)
	require.Len(t, borrowed, 1)
	assert.Equal(t, "Dune", borrowed[0].Name)

	returned, err := f.svc.UserReturnedBooks(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, returned)
	assert.Empty(t, returned)
}
