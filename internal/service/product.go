package service

import (
	"context"
	"fmt"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
	"github.com/erika-dalmagro/orders-app-backend/internal/repo"
	"github.com/erika-dalmagro/orders-app-backend/internal/transport"
)

type ProductService struct {
	Products repo.ProductRepo
	Store    *repo.GormRepo
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Products.GetProduct(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Products.ListProducts(ctx)
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	prod := &models.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}
	return s.Products.CreateProduct(ctx, prod)
}

func (s *ProductService) UpdateProduct(ctx context.Context, req transport.ProductRequest, id uint) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	return s.Products.UpdateProduct(ctx, req, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	total, err := s.Store.CountItemsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if total > 0 {
		return fmt.Errorf("%w: product is referenced by existing orders", ErrConflict)
	}

	return s.Products.DeleteProduct(ctx, id)
}

func validateProduct(req transport.ProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	return nil
}
