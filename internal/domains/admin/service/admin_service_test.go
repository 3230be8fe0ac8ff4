package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"library-backend/internal/domains/admin/model"
	loanmodel "library-backend/internal/domains/loan/model"
	loanmocks "library-backend/internal/domains/loan/repository/mocks"
	usermodel "library-backend/internal/domains/user/model"
	usermocks "library-backend/internal/domains/user/repository/mocks"
)

func newService(users []usermodel.User, stats []loanmodel.UserStats) (ServiceInterface, *usermocks.Repository) {
	u := new(usermocks.Repository)
	l := new(loanmocks.Repository)
	u.On("ListForAdmin", context.Background(), "").Return(users, nil)
	l.On("AllUserStats", context.Background()).Return(stats, nil)
	return NewAdminService(u, l), u
}

var (
	testUsers = []usermodel.User{
		{ID: 1, Login: "carol"},
		{ID: 2, Login: "alice"},
		{ID: 3, Login: "bob"},
		{ID: 4, Login: "Dave"},
	}
	testStats = []loanmodel.UserStats{
		{UserID: 1, BorrowedCount: 2, ReturnedCount: 1},
		{UserID: 3, BorrowedCount: 2, ReturnedCount: 0},
		{UserID: 4, BorrowedCount: 5, ReturnedCount: 3},
		{UserID: 99, BorrowedCount: 1},
	}
)

func names(rows []model.UserStatsRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.UserName
	}
	return out
}

func TestUserStats_JoinAndDefaults(t *testing.T) {
	svc, _ := newService(testUsers, testStats)

	rows, err := svc.UserStats(context.Background(), model.StatsRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 4, "stats for unknown users are ignored")

	assert.Equal(t, []string{"Dave", "alice", "bob", "carol"}, names(rows), "ordinal name order")
	assert.Equal(t, model.UserStatsRow{UserID: 2, UserName: "alice"}, rows[1], "users without loans default to zero")
}

func TestUserStats_Sorting(t *testing.T) {
	tests := []struct {
		name string
		req  model.StatsRequest
		want []string
	}{
		{"name desc", model.StatsRequest{SortDirection: "DESC"}, []string{"carol", "bob", "alice", "Dave"}},
		{"borrowed asc", model.StatsRequest{SortBy: "borrowedcount"}, []string{"alice", "bob", "carol", "Dave"}},
		{"borrowed desc ties by name asc", model.StatsRequest{SortBy: " BorrowedCount ", SortDirection: "desc"}, []string{"Dave", "bob", "carol", "alice"}},
		{"unknown key sorts by name", model.StatsRequest{SortBy: "returned"}, []string{"Dave", "alice", "bob", "carol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(testUsers, testStats)
			rows, err := svc.UserStats(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(rows))
		})
	}
}

func TestUserStats_FilterPassedThrough(t *testing.T) {
	u := new(usermocks.Repository)
	l := new(loanmocks.Repository)
	u.On("ListForAdmin", context.Background(), "ali").Return([]usermodel.User{{ID: 2, Login: "alice"}}, nil)
	l.On("AllUserStats", context.Background()).Return([]loanmodel.UserStats{}, nil)

	rows, err := NewAdminService(u, l).UserStats(context.Background(), model.StatsRequest{Name: "ali"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	u.AssertExpectations(t)
}

func TestUserStats_StoreError(t *testing.T) {
	u := new(usermocks.Repository)
	l := new(loanmocks.Repository)
	dbErr := errors.New("timeout")
	u.On("ListForAdmin", context.Background(), "").Return(nil, dbErr)

	_, err := NewAdminService(u, l).UserStats(context.Background(), model.StatsRequest{})
	assert.ErrorIs(t, err, dbErr)
	l.AssertNotCalled(t, "AllUserStats")
}

func TestSortRows_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		rows := make([]model.UserStatsRow, n)
		for i := range rows {
			rows[i] = model.UserStatsRow{
				UserID:        i + 1,
				UserName:      fmt.Sprintf("user%02d", rapid.IntRange(0, 99).Draw(t, "name")),
				BorrowedCount: rapid.IntRange(0, 4).Draw(t, "borrowed"),
			}
		}
		desc := rapid.Bool().Draw(t, "desc")

		SortRows(rows, model.SortByBorrowedCount, desc)

		for i := 1; i < len(rows); i++ {
			a, b := rows[i-1], rows[i]
			if a.BorrowedCount == b.BorrowedCount {
				if a.UserName > b.UserName {
					t.Fatalf("tie not broken by ascending name: %q before %q", a.UserName, b.UserName)
				}
				continue
			}
			if desc != (a.BorrowedCount > b.BorrowedCount) {
				t.Fatalf("rows %d,%d out of order (desc=%v)", a.BorrowedCount, b.BorrowedCount, desc)
			}
		}
	})
}

func TestExportUserStats(t *testing.T) {
	svc, _ := newService(testUsers, testStats)

	f, err := svc.ExportUserStats(context.Background(), model.StatsRequest{SortBy: "BorrowedCount", SortDirection: "desc"})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(statsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"User ID", "User Name", "Borrowed", "Returned"}, rows[0])
	assert.Equal(t, []string{"4", "Dave", "5", "3"}, rows[1])
	assert.Equal(t, "alice", rows[4][1])
}

func TestBuildStatsWorkbook_Formatting(t *testing.T) {
	f, err := buildStatsWorkbook([]model.UserStatsRow{{UserID: 1, UserName: "alice", BorrowedCount: 2, ReturnedCount: 1}})
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth(statsSheet, "B")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)

	styleID, err := f.GetCellStyle(statsSheet, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	plain, err := f.GetCellStyle(statsSheet, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, styleID, plain)
}
