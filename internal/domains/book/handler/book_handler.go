package handler

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	loanservice "library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/isbn"
	"library-backend/pkg/metrics"
)

// MinSuggestionPrefix is the shortest prefix that triggers a suggestion lookup.
const MinSuggestionPrefix = 4

// anonymousUserID is passed to the borrow status batch for public listings;
// no real user has id 0.
const anonymousUserID = 0

type BookHandler struct {
	service         service.ServiceInterface
	loans           loanservice.ServiceInterface
	metrics         *metrics.Metrics
	defaultPageSize int
	now             func() time.Time
}

func NewBookHandler(
	svc service.ServiceInterface,
	loans loanservice.ServiceInterface,
	m *metrics.Metrics,
	defaultPageSize int,
) *BookHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = utils.DefaultPageSize
	}
	return &BookHandler{
		service:         svc,
		loans:           loans,
		metrics:         m,
		defaultPageSize: defaultPageSize,
		now:             time.Now,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Request body is required and must be valid JSON")
		return
	}

	req.Normalize()
	if err := req.Validate(h.now()); err != nil {
		log.Warn().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("create book validation failed")
		response.HandleError(c, err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordBookCreated()
	}
	response.Success(c, http.StatusCreated, book)
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /v1/books?pageNumber=1&pageSize=10&search=&sortBy=name
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) ListBooks(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.service.ListBooks(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page, pageMeta(page.PageNumber, page.PageSize, page.TotalCount))
}

// ListPublicBooks serves anonymous callers: the same search, projected to
// name, author, isbn and available copies.
func (h *BookHandler) ListPublicBooks(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	page, err := h.service.ListBooks(ctx, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	ids := make([]string, 0, len(page.Items))
	for _, b := range page.Items {
		ids = append(ids, b.ID)
	}

	statuses, err := h.loans.GetBorrowStatusBatch(ctx, ids, anonymousUserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	items := make([]model.PublicBookResponse, 0, len(page.Items))
	for _, b := range page.Items {
		available := b.NumberOfPieces
		if s, ok := statuses[b.ID]; ok {
			available = s.AvailableCount
		}
		items = append(items, model.PublicBookResponse{
			Name:           b.Name,
			Author:         b.Author,
			ISBN:           b.ISBN,
			AvailableCount: available,
		})
	}

	result := utils.PagedResult[model.PublicBookResponse]{
		Items:      items,
		TotalCount: page.TotalCount,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
	response.SuccessWithMeta(c, http.StatusOK, result, pageMeta(result.PageNumber, result.PageSize, result.TotalCount))
}

// ════════════════════════════════════════════════════════════════
// HELPERS: validate-isbn, name/author suggestions
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) ValidateISBN(c *gin.Context) {
	value := strings.TrimSpace(c.Query("isbn"))
	if value == "" {
		response.Success(c, http.StatusOK, false)
		return
	}
	response.Success(c, http.StatusOK, isbn.Valid(value))
}

func (h *BookHandler) NameSuggestions(c *gin.Context) {
	h.suggest(c, h.service.NameSuggestions)
}

func (h *BookHandler) AuthorSuggestions(c *gin.Context) {
	h.suggest(c, h.service.AuthorSuggestions)
}

func (h *BookHandler) suggest(c *gin.Context, lookup func(context.Context, string) ([]string, error)) {
	prefix := strings.TrimSpace(c.Query("prefix"))
	if utf8.RuneCountInString(prefix) < MinSuggestionPrefix {
		response.Success(c, http.StatusOK, []string{})
		return
	}

	suggestions, err := lookup(c.Request.Context(), prefix)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, suggestions)
}

func (h *BookHandler) bindList(c *gin.Context) (model.ListBooksRequest, bool) {
	req := model.ListBooksRequest{PageNumber: 1, PageSize: h.defaultPageSize}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return req, false
	}
	return req, true
}

func pageMeta(page, size, total int) *response.Meta {
	return &response.Meta{Page: page, Limit: size, Total: total}
}
