package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
	"github.com/erika-dalmagro/orders-app-backend/internal/transport"
)

func (r *GormRepo) GetTable(ctx context.Context, id uint) (*models.Table, error) {
	table := models.Table{}
	if err := r.DB.WithContext(ctx).Where("ID=?", id).First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *GormRepo) ListTables(ctx context.Context) ([]models.Table, error) {
	var items []models.Table
	if err := r.DB.WithContext(ctx).Model(&models.Table{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AvailableTables is a derived view, recomputed per call: a table is free
// when it allows multiple tabs, or when no open order references it.
func (r *GormRepo) AvailableTables(ctx context.Context) ([]models.Table, error) {
	occupied := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("table_id").
		Where("status = ?", models.OrderStatusOpen)

	var items []models.Table
	if err := r.DB.WithContext(ctx).
		Model(&models.Table{}).
		Where("single_tab = ? OR id NOT IN (?)", false, occupied).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateTable(ctx context.Context, table *models.Table) (*models.Table, error) {
	if err := r.DB.WithContext(ctx).Create(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

func (r *GormRepo) UpdateTable(ctx context.Context, req transport.TableRequest, id uint) (*models.Table, error) {
	var table models.Table
	if err := r.DB.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}

	table.Name = req.Name
	table.Capacity = req.Capacity
	table.SingleTab = req.SingleTab

	if err := r.DB.WithContext(ctx).Save(&table).Error; err != nil {
		return nil, err
	}

	return &table, nil
}

func (r *GormRepo) DeleteTable(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Table{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *GormRepo) CountOrdersForTable(ctx context.Context, id uint) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("table_id = ?", id).
		Count(&total).Error
	return total, err
}
