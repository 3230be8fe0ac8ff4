// Package mocks provides a testify double for the admin service.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/admin/model"
	"library-backend/internal/domains/admin/service"
)

type Service struct {
	mock.Mock
}

var _ service.ServiceInterface = (*Service)(nil)

func (m *Service) UserStats(ctx context.Context, req model.StatsRequest) ([]model.UserStatsRow, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.([]model.UserStatsRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Service) ExportUserStats(ctx context.Context, req model.StatsRequest) (*excelize.File, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*excelize.File), args.Error(1)
	}
	return nil, args.Error(1)
}
