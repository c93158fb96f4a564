package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
	"github.com/erika-dalmagro/orders-app-backend/internal/transport"
)

type GormRepo struct {
	DB *gorm.DB
}

// ProductRepo is the product slice of the entity store. The redis cache
// decorates it, so lookups must behave the same with and without the cache.
type ProductRepo interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, req transport.ProductRequest, id uint) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}
