package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared/apperror"
)

const (
	MaxBatchSize = 100

	BorrowedMessage = "Book borrowed successfully"
	ReturnedMessage = "Book returned successfully"
)

// ===== REQUEST DTOs =====

type BatchStatusRequest struct {
	BookIDs []string `json:"bookIds"`
}

func (r BatchStatusRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.BookIDs,
			validation.Length(0, MaxBatchSize).Error("At most 100 book ids can be queried at once"),
			validation.Each(validation.Required.Error("Book id must not be blank")),
		),
	)
	return apperror.FromValidation(err)
}

type HistoryRequest struct {
	PageNumber int `form:"pageNumber"`
	PageSize   int `form:"pageSize"`
}

// ===== RESPONSE DTOs =====

type BorrowResult struct {
	LoanID       string    `json:"loanId"`
	BookID       string    `json:"bookId"`
	UserID       int       `json:"userId"`
	BorrowedDate time.Time `json:"borrowedDate"`
	Message      string    `json:"message"`
}

type ReturnResult struct {
	LoanID       string    `json:"loanId"`
	BookID       string    `json:"bookId"`
	ReturnedDate time.Time `json:"returnedDate"`
	Message      string    `json:"message"`
}

type BorrowStatus struct {
	BookID           string `json:"bookId"`
	IsBorrowedByUser bool   `json:"isBorrowedByUser"`
	ActiveLoanCount  int    `json:"activeLoanCount"`
	AvailableCount   int    `json:"availableCount"`
}

type Availability struct {
	BookID         string `json:"bookId"`
	AvailableCount int    `json:"availableCount"`
}

type BorrowedBook struct {
	LoanID       string    `json:"loanId"`
	BookID       string    `json:"bookId"`
	Name         string    `json:"name"`
	Author       string    `json:"author"`
	ISBN         string    `json:"isbn"`
	BorrowedDate time.Time `json:"borrowedDate"`
}

type ReturnedBook struct {
	LoanID       string    `json:"loanId"`
	BookID       string    `json:"bookId"`
	Name         string    `json:"name"`
	Author       string    `json:"author"`
	ISBN         string    `json:"isbn"`
	BorrowedDate time.Time `json:"borrowedDate"`
	ReturnedDate time.Time `json:"returnedDate"`
}

type LoanHistoryItem struct {
	LoanID       string     `json:"loanId"`
	BookID       string     `json:"bookId"`
	Name         string     `json:"name"`
	Author       string     `json:"author"`
	ISBN         string     `json:"isbn"`
	BorrowedDate time.Time  `json:"borrowedDate"`
	ReturnedDate *time.Time `json:"returnedDate"`
	IsReturned   bool       `json:"isReturned"`
}

func (l *LoanWithBook) ToBorrowed() BorrowedBook {
	return BorrowedBook{
		LoanID:       l.ID,
		BookID:       l.BookID,
		Name:         l.BookName,
		Author:       l.BookAuthor,
		ISBN:         l.BookISBN,
		BorrowedDate: l.BorrowedDate,
	}
}

func (l *LoanWithBook) ToReturned() ReturnedBook {
	r := ReturnedBook{
		LoanID:       l.ID,
		BookID:       l.BookID,
		Name:         l.BookName,
		Author:       l.BookAuthor,
		ISBN:         l.BookISBN,
		BorrowedDate: l.BorrowedDate,
	}
	if l.ReturnedDate != nil {
		r.ReturnedDate = *l.ReturnedDate
	}
	return r
}

func (l *LoanWithBook) ToHistoryItem() LoanHistoryItem {
	return LoanHistoryItem{
		LoanID:       l.ID,
		BookID:       l.BookID,
		Name:         l.BookName,
		Author:       l.BookAuthor,
		ISBN:         l.BookISBN,
		BorrowedDate: l.BorrowedDate,
		ReturnedDate: l.ReturnedDate,
		IsReturned:   l.ReturnedDate != nil,
	}
}
