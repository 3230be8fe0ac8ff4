package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared/apperror"
	"library-backend/pkg/isbn"
)

const (
	MaxNameLength   = 300
	MaxAuthorLength = 200
	MinIssueYear    = 1000
)

// ===== REQUEST DTOs =====

type CreateBookRequest struct {
	Name           string `json:"name"`
	Author         string `json:"author"`
	IssueYear      int    `json:"issueYear"`
	ISBN           string `json:"isbn"`
	NumberOfPieces int    `json:"numberOfPieces"`
}

// Normalize trims surrounding whitespace from the text fields.
func (r *CreateBookRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Author = strings.TrimSpace(r.Author)
	r.ISBN = strings.TrimSpace(r.ISBN)
}

// Validate checks field rules, judging the issue year against now.
func (r CreateBookRequest) Validate(now time.Time) error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Name is required"),
			validation.RuneLength(0, MaxNameLength).Error("Name must not exceed 300 characters"),
		),
		validation.Field(&r.Author,
			validation.Required.Error("Author is required"),
			validation.RuneLength(0, MaxAuthorLength).Error("Author must not exceed 200 characters"),
		),
		validation.Field(&r.IssueYear,
			validation.Required.Error("Issue year is required"),
			validation.Min(MinIssueYear).Error("Issue year must be 1000 or later"),
			validation.Max(now.Year()).Error("Issue year cannot be in the future"),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("ISBN is required"),
			isbn.Rule.Error("ISBN must be a valid ISBN-13"),
		),
		validation.Field(&r.NumberOfPieces,
			validation.Min(0).Error("Number of pieces cannot be negative"),
		),
	)
	return apperror.FromValidation(err)
}

// ListBooksRequest carries raw listing parameters as received from a caller.
type ListBooksRequest struct {
	PageNumber    int    `form:"pageNumber"`
	PageSize      int    `form:"pageSize"`
	Search        string `form:"search"`
	Name          string `form:"name"`
	Author        string `form:"author"`
	ISBN          string `form:"isbn"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection"`
	OnlyAvailable bool   `form:"onlyAvailable"`
}

// ===== RESPONSE DTOs =====

type BookResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Author         string `json:"author"`
	IssueYear      int    `json:"issueYear"`
	ISBN           string `json:"isbn"`
	NumberOfPieces int    `json:"numberOfPieces"`
}

// PublicBookResponse is the anonymous listing projection.
type PublicBookResponse struct {
	Name           string `json:"name"`
	Author         string `json:"author"`
	ISBN           string `json:"isbn"`
	AvailableCount int    `json:"availableCount"`
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
