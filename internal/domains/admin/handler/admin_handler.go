package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/admin/model"
	"library-backend/internal/domains/admin/service"
	"library-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(svc service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: svc}
}

// GET /v1/admin/users/stats?name=&sortBy=BorrowedCount&sortDirection=desc
func (h *AdminHandler) UserStats(c *gin.Context) {
	var req model.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	rows, err := h.service.UserStats(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, rows, &response.Meta{Total: len(rows)})
}

// GET /v1/admin/users/stats/export
func (h *AdminHandler) ExportUserStats(c *gin.Context) {
	var req model.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	f, err := h.service.ExportUserStats(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	buf, err := f.WriteToBuffer()
	if err != nil {
		response.HandleError(c, fmt.Errorf("failed to write workbook: %w", err))
		return
	}

	filename := fmt.Sprintf("user-stats-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
