package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/database"
	"library-backend/pkg/logger"
)

type LoanService struct {
	txm   database.TxManager
	books bookrepo.RepositoryInterface
	loans repository.RepositoryInterface
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*LoanService)

func WithLogger(l zerolog.Logger) Option {
	return func(s *LoanService) { s.log = l }
}

// WithClock replaces time.Now for borrow and return timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *LoanService) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *LoanService) { s.newID = fn }
}

func NewLoanService(
	txm database.TxManager,
	books bookrepo.RepositoryInterface,
	loans repository.RepositoryInterface,
	opts ...Option,
) ServiceInterface {
	s := &LoanService{
		txm:   txm,
		books: books,
		loans: loans,
		log:   logger.Named("loan_service"),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Borrow creates an active loan. The book row stays locked until commit, so
// concurrent borrows of one book see each other's loans.
func (s *LoanService) Borrow(ctx context.Context, bookID string, userID int) (*model.BorrowResult, error) {
	var loan *model.Loan

	err := s.txm.WithTransaction(ctx, func(tx pgx.Tx) error {
		books := s.books.WithTx(tx)
		loans := s.loans.WithTx(tx)

		book, err := books.LockByID(ctx, bookID)
		if err != nil {
			return err
		}

		active, err := loans.ActiveCountByBook(ctx, bookID)
		if err != nil {
			return err
		}
		if book.NumberOfPieces-active <= 0 {
			return model.NewNoCopiesError(active, book.NumberOfPieces)
		}

		existing, err := loans.OldestActiveLoan(ctx, bookID, userID, false)
		if err != nil {
			return err
		}
		if existing != nil {
			return model.NewAlreadyBorrowedError()
		}

		loan = &model.Loan{
			ID:           s.newID(),
			BookID:       bookID,
			UserID:       userID,
			BorrowedDate: s.now().UTC(),
		}
		return loans.Create(ctx, loan)
	})
	if err != nil {
		s.log.Debug().Err(err).Str("book_id", bookID).Int("user_id", userID).Msg("borrow rejected")
		return nil, err
	}

	s.log.Info().
		Str("loan_id", loan.ID).
		Str("book_id", bookID).
		Int("user_id", userID).
		Msg("book borrowed")

	return &model.BorrowResult{
		LoanID:       loan.ID,
		BookID:       loan.BookID,
		UserID:       loan.UserID,
		BorrowedDate: loan.BorrowedDate,
		Message:      model.BorrowedMessage,
	}, nil
}

// Return closes the user's oldest active loan for the book.
func (s *LoanService) Return(ctx context.Context, bookID string, userID int) (*model.ReturnResult, error) {
	var result *model.ReturnResult

	err := s.txm.WithTransaction(ctx, func(tx pgx.Tx) error {
		books := s.books.WithTx(tx)
		loans := s.loans.WithTx(tx)

		loan, err := loans.OldestActiveLoan(ctx, bookID, userID, true)
		if err != nil {
			return err
		}
		if loan == nil {
			return model.NewNotActiveError()
		}

		if _, err := books.GetByID(ctx, bookID); err != nil {
			return err
		}

		returnedAt := s.now().UTC()
		updated, err := loans.MarkReturned(ctx, loan.ID, returnedAt)
		if err != nil {
			return err
		}
		if !updated {
			return model.NewNotActiveError()
		}

		result = &model.ReturnResult{
			LoanID:       loan.ID,
			BookID:       bookID,
			ReturnedDate: returnedAt,
			Message:      model.ReturnedMessage,
		}
		return nil
	})
	if err != nil {
		s.log.Debug().Err(err).Str("book_id", bookID).Int("user_id", userID).Msg("return rejected")
		return nil, err
	}

	s.log.Info().
		Str("loan_id", result.LoanID).
		Str("book_id", bookID).
		Int("user_id", userID).
		Msg("book returned")

	return result, nil
}

func (s *LoanService) GetBorrowStatus(ctx context.Context, bookID string, userID int) (*model.BorrowStatus, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	counts, err := s.loans.ActiveCountsByBooks(ctx, []string{bookID}, userID)
	if err != nil {
		s.log.Error().Err(err).Str("book_id", bookID).Msg("active loan count failed")
		return nil, err
	}

	status := buildStatus(book.ID, book.NumberOfPieces, counts[book.ID])
	return &status, nil
}

func (s *LoanService) GetBorrowStatusBatch(ctx context.Context, bookIDs []string, userID int) (map[string]model.BorrowStatus, error) {
	ids := utils.Dedupe(bookIDs)
	if len(ids) == 0 {
		return map[string]model.BorrowStatus{}, nil
	}

	books, err := s.books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return map[string]model.BorrowStatus{}, nil
	}

	found := make([]string, 0, len(books))
	for i := range books {
		found = append(found, books[i].ID)
	}

	counts, err := s.loans.ActiveCountsByBooks(ctx, found, userID)
	if err != nil {
		s.log.Error().Err(err).Int("books", len(found)).Msg("batch loan count failed")
		return nil, err
	}

	statuses := make(map[string]model.BorrowStatus, len(books))
	for i := range books {
		b := &books[i]
		statuses[b.ID] = buildStatus(b.ID, b.NumberOfPieces, counts[b.ID])
	}
	return statuses, nil
}

func (s *LoanService) GetAvailableCount(ctx context.Context, bookID string) (int, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return 0, err
	}

	active, err := s.loans.ActiveCountByBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	return model.AvailableCount(book.NumberOfPieces, active), nil
}

func (s *LoanService) UserBorrowedBooks(ctx context.Context, userID int) ([]model.BorrowedBook, error) {
	rows, err := s.loans.UserBorrowed(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.BorrowedBook, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToBorrowed())
	}
	return items, nil
}

func (s *LoanService) UserReturnedBooks(ctx context.Context, userID int) ([]model.ReturnedBook, error) {
	rows, err := s.loans.UserReturned(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.ReturnedBook, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToReturned())
	}
	return items, nil
}

func (s *LoanService) UserLoanHistory(ctx context.Context, userID int, req model.HistoryRequest) (*utils.PagedResult[model.LoanHistoryItem], error) {
	page, size := utils.ClampPaging(req.PageNumber, req.PageSize)

	rows, total, err := s.loans.UserHistoryPaged(ctx, userID, true, page, size)
	if err != nil {
		return nil, err
	}

	items := make([]model.LoanHistoryItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToHistoryItem())
	}

	return &utils.PagedResult[model.LoanHistoryItem]{
		Items:      items,
		TotalCount: total,
		PageNumber: page,
		PageSize:   size,
	}, nil
}

func buildStatus(bookID string, pieces int, c model.BookCounts) model.BorrowStatus {
	return model.BorrowStatus{
		BookID:           bookID,
		IsBorrowedByUser: c.UserActive > 0,
		ActiveLoanCount:  c.UserActive,
		AvailableCount:   model.AvailableCount(pieces, c.TotalActive),
	}
}
