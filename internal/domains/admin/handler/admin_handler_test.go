package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/admin/model"
	"library-backend/internal/domains/admin/service/mocks"
	"library-backend/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup() (*gin.Engine, *mocks.Service) {
	svc := new(mocks.Service)
	h := NewAdminHandler(svc)
	r := gin.New()
	r.GET("/admin/users/stats", h.UserStats)
	r.GET("/admin/users/stats/export", h.ExportUserStats)
	return r, svc
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestUserStats(t *testing.T) {
	r, svc := setup()
	req := model.StatsRequest{Name: "ali", SortBy: "BorrowedCount", SortDirection: "desc"}
	svc.On("UserStats", mock.Anything, req).Return([]model.UserStatsRow{
		{UserID: 2, UserName: "alice", BorrowedCount: 1, ReturnedCount: 4},
	}, nil)

	w := get(r, "/admin/users/stats?name=ali&sortBy=BorrowedCount&sortDirection=desc")
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Contains(t, w.Body.String(), `"userName":"alice"`)
	assert.Contains(t, w.Body.String(), `"returnedCount":4`)
}

func TestUserStats_Error(t *testing.T) {
	r, svc := setup()
	svc.On("UserStats", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	w := get(r, "/admin/users/stats")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestExportUserStats(t *testing.T) {
	r, svc := setup()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "User ID"))
	svc.On("ExportUserStats", mock.Anything, model.StatsRequest{}).Return(f, nil)

	w := get(r, "/admin/users/stats/export")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")

	wb, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()
	v, err := wb.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "User ID", v)
}
