package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/shared/apperror"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func validRequest() CreateBookRequest {
	return CreateBookRequest{
		Name:           "The C Programming Language",
		Author:         "Kernighan, Ritchie",
		IssueYear:      1988,
		ISBN:           "978-0-13-110163-0",
		NumberOfPieces: 3,
	}
}

func TestCreateBookRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CreateBookRequest)
		wantField string
	}{
		{"valid", func(r *CreateBookRequest) {}, ""},
		{"zero pieces allowed", func(r *CreateBookRequest) { r.NumberOfPieces = 0 }, ""},
		{"current year allowed", func(r *CreateBookRequest) { r.IssueYear = now.Year() }, ""},
		{"missing name", func(r *CreateBookRequest) { r.Name = "" }, "name"},
		{"name too long", func(r *CreateBookRequest) { r.Name = strings.Repeat("a", MaxNameLength+1) }, "name"},
		{"missing author", func(r *CreateBookRequest) { r.Author = "" }, "author"},
		{"author too long", func(r *CreateBookRequest) { r.Author = strings.Repeat("é", MaxAuthorLength+1) }, "author"},
		{"missing year", func(r *CreateBookRequest) { r.IssueYear = 0 }, "issueYear"},
		{"year too early", func(r *CreateBookRequest) { r.IssueYear = 999 }, "issueYear"},
		{"year in future", func(r *CreateBookRequest) { r.IssueYear = now.Year() + 1 }, "issueYear"},
		{"missing isbn", func(r *CreateBookRequest) { r.ISBN = "" }, "isbn"},
		{"bad checksum", func(r *CreateBookRequest) { r.ISBN = "9780131101631" }, "isbn"},
		{"negative pieces", func(r *CreateBookRequest) { r.NumberOfPieces = -1 }, "numberOfPieces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate(now)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.True(t, apperror.IsValidation(err), "got %v", err)
			appErr, _ := apperror.As(err)
			assert.Contains(t, appErr.Details, tt.wantField)
		})
	}
}

func TestCreateBookRequest_NameRuneLength(t *testing.T) {
	req := validRequest()
	req.Name = strings.Repeat("ü", MaxNameLength)

	assert.NoError(t, req.Validate(now))
}

func TestCreateBookRequest_Normalize(t *testing.T) {
	req := CreateBookRequest{Name: "  Dune ", Author: " Herbert", ISBN: " 9780441013593 "}
	req.Normalize()

	assert.Equal(t, "Dune", req.Name)
	assert.Equal(t, "Herbert", req.Author)
	assert.Equal(t, "9780441013593", req.ISBN)
}

func TestCreateBookRequest_WhitespaceOnlyNameIsMissing(t *testing.T) {
	req := validRequest()
	req.Name = "   "
	req.Normalize()

	assert.True(t, apperror.IsValidation(req.Validate(now)))
}

func TestParseSortField(t *testing.T) {
	assert.Equal(t, SortByAuthor, ParseSortField("Author"))
	assert.Equal(t, SortByAuthor, ParseSortField("AUTHOR"))
	assert.Equal(t, SortByName, ParseSortField("name"))
	assert.Equal(t, SortByName, ParseSortField(""))
	assert.Equal(t, SortByName, ParseSortField("issueYear"))
}

func TestIsDescending(t *testing.T) {
	assert.True(t, IsDescending("desc"))
	assert.True(t, IsDescending("DESC"))
	assert.False(t, IsDescending("asc"))
	assert.False(t, IsDescending("descending"))
	assert.False(t, IsDescending(""))
}

func TestErrors(t *testing.T) {
	err := NewBookNotFoundError("abc")
	assert.Equal(t, "Book with ID 'abc' not found.", err.Error())
	assert.ErrorIs(t, err, ErrBookNotFound)

	dup := NewDuplicateBookError("Dune", "Herbert", "9780441013593")
	assert.Equal(t, "A book with the combination of Name 'Dune', Author 'Herbert', and ISBN '9780441013593' already exists.", dup.Error())
	assert.ErrorIs(t, dup, ErrBookDuplicate)
	assert.NotErrorIs(t, dup, ErrISBNTaken)
}
