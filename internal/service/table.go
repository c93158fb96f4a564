package service

import (
	"context"
	"fmt"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
	"github.com/erika-dalmagro/orders-app-backend/internal/repo"
	"github.com/erika-dalmagro/orders-app-backend/internal/transport"
)

type TableService struct {
	Store *repo.GormRepo
}

func (s *TableService) ListTables(ctx context.Context) ([]models.Table, error) {
	return s.Store.ListTables(ctx)
}

func (s *TableService) AvailableTables(ctx context.Context) ([]models.Table, error) {
	return s.Store.AvailableTables(ctx)
}

func (s *TableService) CreateTable(ctx context.Context, req transport.TableRequest) (*models.Table, error) {
	if err := validateTable(req); err != nil {
		return nil, err
	}

	table := &models.Table{
		Name:      req.Name,
		Capacity:  req.Capacity,
		SingleTab: req.SingleTab,
	}
	return s.Store.CreateTable(ctx, table)
}

func (s *TableService) UpdateTable(ctx context.Context, req transport.TableRequest, id uint) (*models.Table, error) {
	if err := validateTable(req); err != nil {
		return nil, err
	}

	return s.Store.UpdateTable(ctx, req, id)
}

func (s *TableService) DeleteTable(ctx context.Context, id uint) error {
	total, err := s.Store.CountOrdersForTable(ctx, id)
	if err != nil {
		return err
	}
	if total > 0 {
		return fmt.Errorf("%w: table is referenced by existing orders", ErrConflict)
	}

	return s.Store.DeleteTable(ctx, id)
}

func validateTable(req transport.TableRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be >= 1", ErrValidation)
	}
	return nil
}
