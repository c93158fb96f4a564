package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
	"github.com/erika-dalmagro/orders-app-backend/internal/repo"
	"github.com/erika-dalmagro/orders-app-backend/internal/transport"
)

const dateLayout = "2006-01-02"

type OrderService struct {
	Store *repo.GormRepo
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.Store.GetOrder(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Store.ListOrders(ctx)
}

func (s *OrderService) ListOrdersByDate(ctx context.Context, date string) ([]models.Order, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return s.Store.ListOrdersByDate(ctx, date)
}

// CreateOrder opens a new order. The availability re-check, the stock
// decrements and the order insert share one transaction so that two
// concurrent creates cannot double-book a single-tab table or oversell
// a product.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.OrderRequest) (*models.Order, error) {
	if err := validateOrderItems(req.Items); err != nil {
		return nil, err
	}
	if req.TableID == 0 {
		return nil, fmt.Errorf("%w: table_id required", ErrValidation)
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	order := &models.Order{
		TableID: req.TableID,
		Status:  models.OrderStatusOpen,
		Date:    date,
	}

	txErr := s.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTableFree(tx, req.TableID, 0); err != nil {
			return err
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, it := range req.Items {
			if err := decrementStock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Store.GetOrder(ctx, order.ID)
}

// UpdateOrder replaces the item set and table assignment wholesale. The
// original stock decrements are reversed and the new set applied in the
// same transaction. The order's own table always passes the availability
// check, even when it would otherwise be occupied. Date is immutable.
func (s *OrderService) UpdateOrder(ctx context.Context, req transport.OrderRequest, id uint) (*models.Order, error) {
	if err := validateOrderItems(req.Items); err != nil {
		return nil, err
	}
	if req.TableID == 0 {
		return nil, fmt.Errorf("%w: table_id required", ErrValidation)
	}

	txErr := s.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			return err
		}
		if order.Status == models.OrderStatusClosed {
			return fmt.Errorf("%w: cannot edit a closed order", ErrInvalidState)
		}

		if req.TableID != order.TableID {
			if err := checkTableFree(tx, req.TableID, order.ID); err != nil {
				return err
			}
		}

		for _, it := range order.Items {
			if err := restock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		for _, it := range req.Items {
			if err := decrementStock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
		}

		return tx.Model(&order).Update("table_id", req.TableID).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Store.GetOrder(ctx, id)
}

// CloseOrder is idempotent: closing an already closed order returns it
// unchanged.
func (s *OrderService) CloseOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusClosed {
		return order, nil
	}

	if err := s.Store.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", models.OrderStatusClosed).Error; err != nil {
		return nil, err
	}

	return s.Store.GetOrder(ctx, id)
}

// DeleteOrder removes the order and its items. Stock is not returned:
// there is no order history to reconcile against.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	return s.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

func validateOrderItems(items []transport.OrderItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, it := range items {
		if it.ProductID == 0 {
			return fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
	}
	return nil
}

// checkTableFree re-checks availability inside the caller's transaction.
// excludeOrderID lets an edit keep its own table out of the count.
func checkTableFree(tx *gorm.DB, tableID, excludeOrderID uint) error {
	// Write-lock the table row so concurrent creates against the same
	// table serialize. A blocked transaction resumes after the winner
	// commits and its count below then sees the new open order.
	// SELECT FOR UPDATE would do the same on postgres but is not valid
	// sqlite syntax.
	res := tx.Model(&models.Table{}).
		Where("id = ?", tableID).
		UpdateColumn("id", tableID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: table %d does not exist", ErrValidation, tableID)
	}

	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		return err
	}
	if !table.SingleTab {
		return nil
	}

	q := tx.Model(&models.Order{}).
		Where("table_id = ? AND status = ?", table.ID, models.OrderStatusOpen)
	if excludeOrderID != 0 {
		q = q.Where("id <> ?", excludeOrderID)
	}

	var open int64
	if err := q.Count(&open).Error; err != nil {
		return err
	}
	if open > 0 {
		return fmt.Errorf("%w: table %q is not available", ErrConflict, table.Name)
	}
	return nil
}

// decrementStock takes quantity from the product guarded against going
// negative; zero rows affected means either an unknown product or not
// enough stock.
func decrementStock(tx *gorm.DB, productID uint, quantity int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var prod models.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d does not exist", ErrValidation, productID)
			}
			return err
		}
		return fmt.Errorf("%w: insufficient stock for product %q", ErrConflict, prod.Name)
	}
	return nil
}

func restock(tx *gorm.DB, productID uint, quantity int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}
