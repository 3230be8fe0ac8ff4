package model

import "time"

// Loan is one borrowing of one book by one user. It is active while
// ReturnedDate is nil.
type Loan struct {
	ID           string     `json:"id" db:"id"`
	BookID       string     `json:"bookId" db:"book_id"`
	UserID       int        `json:"userId" db:"user_id"`
	BorrowedDate time.Time  `json:"borrowedDate" db:"borrowed_date"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty" db:"returned_date"`
}

func (l *Loan) IsActive() bool {
	return l.ReturnedDate == nil
}

// BookCounts holds active loan counts for one book: across all users and
// for the requesting user only.
type BookCounts struct {
	TotalActive int
	UserActive  int
}

// LoanWithBook is a loan row joined with the book it refers to.
type LoanWithBook struct {
	Loan
	BookName   string
	BookAuthor string
	BookISBN   string
}

// UserStats aggregates the loans of one user.
type UserStats struct {
	UserID        int
	BorrowedCount int
	ReturnedCount int
}

// AvailableCount is max(0, pieces-active).
func AvailableCount(pieces, active int) int {
	if n := pieces - active; n > 0 {
		return n
	}
	return 0
}
