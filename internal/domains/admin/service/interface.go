package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/admin/model"
)

type ServiceInterface interface {
	UserStats(ctx context.Context, req model.StatsRequest) ([]model.UserStatsRow, error)
	// ExportUserStats renders the UserStats rows into a single-sheet workbook.
	ExportUserStats(ctx context.Context, req model.StatsRequest) (*excelize.File, error)
}
