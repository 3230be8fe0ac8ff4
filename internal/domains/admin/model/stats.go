package model

import "strings"

// SortKey orders the admin user table.
type SortKey string

const (
	SortByName          SortKey = "name"
	SortByBorrowedCount SortKey = "borrowedCount"
)

// ParseSortKey selects borrowed-count ordering for "BorrowedCount" in any
// case; everything else sorts by name.
func ParseSortKey(s string) SortKey {
	if strings.EqualFold(strings.TrimSpace(s), "BorrowedCount") {
		return SortByBorrowedCount
	}
	return SortByName
}

type StatsRequest struct {
	Name          string `form:"name"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection"`
}

// Descending reports whether the direction is "desc" in any case.
func (r StatsRequest) Descending() bool {
	return strings.EqualFold(strings.TrimSpace(r.SortDirection), "desc")
}

// UserStatsRow is one line of the admin report.
type UserStatsRow struct {
	UserID        int    `json:"userId"`
	UserName      string `json:"userName"`
	BorrowedCount int    `json:"borrowedCount"`
	ReturnedCount int    `json:"returnedCount"`
}
