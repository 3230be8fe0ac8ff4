package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/admin/model"
	loanrepo "library-backend/internal/domains/loan/repository"
	userrepo "library-backend/internal/domains/user/repository"
	"library-backend/pkg/logger"
)

const statsSheet = "User stats"

type AdminService struct {
	users userrepo.RepositoryInterface
	loans loanrepo.RepositoryInterface
	log   zerolog.Logger
}

func NewAdminService(users userrepo.RepositoryInterface, loans loanrepo.RepositoryInterface) ServiceInterface {
	return &AdminService{
		users: users,
		loans: loans,
		log:   logger.Named("admin_service"),
	}
}

func (s *AdminService) UserStats(ctx context.Context, req model.StatsRequest) ([]model.UserStatsRow, error) {
	users, err := s.users.ListForAdmin(ctx, req.Name)
	if err != nil {
		s.log.Error().Err(err).Msg("list users failed")
		return nil, err
	}

	stats, err := s.loans.AllUserStats(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("aggregate loan stats failed")
		return nil, err
	}

	byUser := make(map[int][2]int, len(stats))
	for _, st := range stats {
		byUser[st.UserID] = [2]int{st.BorrowedCount, st.ReturnedCount}
	}

	rows := make([]model.UserStatsRow, 0, len(users))
	for _, u := range users {
		counts := byUser[u.ID]
		rows = append(rows, model.UserStatsRow{
			UserID:        u.ID,
			UserName:      u.Login,
			BorrowedCount: counts[0],
			ReturnedCount: counts[1],
		})
	}

	SortRows(rows, model.ParseSortKey(req.SortBy), req.Descending())

	s.log.Info().Int("count", len(rows)).Msg("admin user stats retrieved")
	return rows, nil
}

// SortRows orders rows in place. Names compare byte-wise. Borrowed-count
// ties always fall back to ascending name, whatever the direction.
func SortRows(rows []model.UserStatsRow, key model.SortKey, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if key == model.SortByBorrowedCount {
			if a.BorrowedCount != b.BorrowedCount {
				if desc {
					return a.BorrowedCount > b.BorrowedCount
				}
				return a.BorrowedCount < b.BorrowedCount
			}
			return a.UserName < b.UserName
		}
		if desc {
			return a.UserName > b.UserName
		}
		return a.UserName < b.UserName
	})
}

func (s *AdminService) ExportUserStats(ctx context.Context, req model.StatsRequest) (*excelize.File, error) {
	rows, err := s.UserStats(ctx, req)
	if err != nil {
		return nil, err
	}

	f, err := buildStatsWorkbook(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildStatsWorkbook(rows []model.UserStatsRow) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename default sheet
	if err := f.SetSheetName("Sheet1", statsSheet); err != nil {
		return nil, err
	}

	headers := []string{"User ID", "User Name", "Borrowed", "Returned"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(statsSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(statsSheet, "A1", "D1", headerStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		values := []interface{}{r.UserID, r.UserName, r.BorrowedCount, r.ReturnedCount}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(statsSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(statsSheet, "B", "B", 30); err != nil {
		return nil, err
	}
	return f, nil
}
