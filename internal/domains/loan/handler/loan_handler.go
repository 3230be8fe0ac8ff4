package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/metrics"
)

const (
	operationBorrow = "borrow"
	operationReturn = "return"
)

type LoanHandler struct {
	service         service.ServiceInterface
	metrics         *metrics.Metrics
	defaultPageSize int
}

func NewLoanHandler(svc service.ServiceInterface, m *metrics.Metrics, defaultPageSize int) *LoanHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = utils.DefaultPageSize
	}
	return &LoanHandler{
		service:         svc,
		metrics:         m,
		defaultPageSize: defaultPageSize,
	}
}

// ════════════════════════════════════════════════════════════════
// BORROW: POST /v1/books/:id/borrow
// ════════════════════════════════════════════════════════════════

func (h *LoanHandler) Borrow(c *gin.Context) {
	userID, bookID, ok := h.caller(c)
	if !ok {
		h.record(operationBorrow, metrics.OutcomeInvalid)
		return
	}

	result, err := h.service.Borrow(c.Request.Context(), bookID, userID)
	h.record(operationBorrow, outcomeFor(err))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// RETURN: POST /v1/books/:id/return
// ════════════════════════════════════════════════════════════════

func (h *LoanHandler) Return(c *gin.Context) {
	userID, bookID, ok := h.caller(c)
	if !ok {
		h.record(operationReturn, metrics.OutcomeInvalid)
		return
	}

	result, err := h.service.Return(c.Request.Context(), bookID, userID)
	h.record(operationReturn, outcomeFor(err))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// STATUS: GET /v1/books/:id/borrow-status
// ════════════════════════════════════════════════════════════════

func (h *LoanHandler) BorrowStatus(c *gin.Context) {
	userID, bookID, ok := h.caller(c)
	if !ok {
		return
	}

	status, err := h.service.GetBorrowStatus(c.Request.Context(), bookID, userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// POST /v1/books/borrow-status/batch
func (h *LoanHandler) BorrowStatusBatch(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.BatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	statuses, err := h.service.GetBorrowStatusBatch(c.Request.Context(), req.BookIDs, userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, statuses)
}

// GET /v1/books/:id/availability
func (h *LoanHandler) Availability(c *gin.Context) {
	bookID := strings.TrimSpace(c.Param("id"))
	if bookID == "" {
		response.BadRequest(c, "Book id is required")
		return
	}

	n, err := h.service.GetAvailableCount(c.Request.Context(), bookID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.Availability{BookID: bookID, AvailableCount: n})
}

// ════════════════════════════════════════════════════════════════
// HISTORY: GET /v1/me/...
// ════════════════════════════════════════════════════════════════

func (h *LoanHandler) BorrowedBooks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	items, err := h.service.UserBorrowedBooks(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *LoanHandler) ReturnedBooks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	items, err := h.service.UserReturnedBooks(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// GET /v1/me/loan-history?pageNumber=1&pageSize=10
func (h *LoanHandler) LoanHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	req := model.HistoryRequest{PageNumber: 1, PageSize: h.defaultPageSize}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid paging parameters")
		return
	}

	page, err := h.service.UserLoanHistory(c.Request.Context(), userID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page, &response.Meta{
		Page:  page.PageNumber,
		Limit: page.PageSize,
		Total: page.TotalCount,
	})
}

// caller extracts the authenticated user id and the :id path parameter,
// writing an error response when either is missing.
func (h *LoanHandler) caller(c *gin.Context) (int, string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return 0, "", false
	}

	bookID := strings.TrimSpace(c.Param("id"))
	if bookID == "" {
		response.BadRequest(c, "Book id is required")
		return 0, "", false
	}
	return userID, bookID, true
}

func (h *LoanHandler) record(operation, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLoanOperation(operation, outcome)
	}
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return metrics.OutcomeNotFound
	case apperror.KindConflict:
		return metrics.OutcomeConflict
	case apperror.KindValidation:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
