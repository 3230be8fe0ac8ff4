package model

import "time"

// Book is a catalog entry. NumberOfPieces is the count of owned copies;
// availability is derived from active loans and never stored here.
type Book struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Author         string    `json:"author" db:"author"`
	IssueYear      int       `json:"issueYear" db:"issue_year"`
	ISBN           string    `json:"isbn" db:"isbn"`
	NumberOfPieces int       `json:"numberOfPieces" db:"number_of_pieces"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:             b.ID,
		Name:           b.Name,
		Author:         b.Author,
		IssueYear:      b.IssueYear,
		ISBN:           b.ISBN,
		NumberOfPieces: b.NumberOfPieces,
	}
}

// SortField selects the primary ordering of a catalog listing.
type SortField string

const (
	SortByName   SortField = "name"
	SortByAuthor SortField = "author"
)

// ParseSortField maps user input to a sort field. Only "author" (any case)
// selects author ordering.
func ParseSortField(s string) SortField {
	if equalFold(s, "author") {
		return SortByAuthor
	}
	return SortByName
}

// IsDescending reports whether direction is "desc" in any case.
func IsDescending(direction string) bool {
	return equalFold(direction, "desc")
}

// BookFilter is a normalized catalog query. Terms, when non-empty, take
// precedence over the Name/Author/ISBN field filters.
type BookFilter struct {
	Page          int
	PageSize      int
	Terms         []string
	Name          string
	Author        string
	ISBN          string
	SortBy        SortField
	Descending    bool
	OnlyAvailable bool
}

// UsesTerms reports whether the free-text mode applies.
func (f BookFilter) UsesTerms() bool {
	return len(f.Terms) > 0
}
