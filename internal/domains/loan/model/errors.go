package model

import "library-backend/internal/shared/apperror"

const (
	CodeNoCopies        = "LOAN_NO_COPIES"
	CodeAlreadyBorrowed = "LOAN_ALREADY_BORROWED"
	CodeNotActive       = "LOAN_NOT_ACTIVE"
)

var (
	ErrNoCopies        = &apperror.Error{Kind: apperror.KindConflict, Code: CodeNoCopies}
	ErrAlreadyBorrowed = &apperror.Error{Kind: apperror.KindConflict, Code: CodeAlreadyBorrowed}
	ErrNotActive       = &apperror.Error{Kind: apperror.KindConflict, Code: CodeNotActive}
)

func NewNoCopiesError(active, pieces int) *apperror.Error {
	return apperror.Conflict(CodeNoCopies,
		"No available copies of this book. Currently %d out of %d are borrowed.", active, pieces)
}

func NewAlreadyBorrowedError() *apperror.Error {
	return apperror.Conflict(CodeAlreadyBorrowed, "You already have this book borrowed.")
}

func NewNotActiveError() *apperror.Error {
	return apperror.Conflict(CodeNotActive, "You don't have an active loan for this book.")
}
