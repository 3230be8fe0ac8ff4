package model

import "library-backend/internal/shared/apperror"

const (
	CodeBookNotFound  = "BOOK_NOT_FOUND"
	CodeBookDuplicate = "BOOK_DUPLICATE"
	CodeISBNTaken     = "BOOK_ISBN_TAKEN"
)

var (
	ErrBookNotFound  = &apperror.Error{Kind: apperror.KindNotFound, Code: CodeBookNotFound}
	ErrBookDuplicate = &apperror.Error{Kind: apperror.KindConflict, Code: CodeBookDuplicate}
	ErrISBNTaken     = &apperror.Error{Kind: apperror.KindConflict, Code: CodeISBNTaken}
)

func NewBookNotFoundError(id string) *apperror.Error {
	return apperror.NotFound(CodeBookNotFound, "Book with ID '%s' not found.", id)
}

func NewDuplicateBookError(name, author, isbn string) *apperror.Error {
	return apperror.Conflict(CodeBookDuplicate,
		"A book with the combination of Name '%s', Author '%s', and ISBN '%s' already exists.",
		name, author, isbn)
}

func NewISBNTakenError(isbn string) *apperror.Error {
	return apperror.Conflict(CodeISBNTaken, "A book with ISBN '%s' already exists.", isbn)
}
