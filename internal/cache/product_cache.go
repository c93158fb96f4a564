package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/erika-dalmagro/orders-app-backend/internal/models"
	"github.com/erika-dalmagro/orders-app-backend/internal/repo"
	"github.com/erika-dalmagro/orders-app-backend/internal/transport"
)

const listKey = "products:all"

// CachedProductRepo is a read-through cache over the product store.
// Every mutation invalidates the touched keys so readers fall back to
// the database on the next call.
type CachedProductRepo struct {
	realRepo repo.ProductRepo
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedProductRepo(realRepo repo.ProductRepo, rdb *redis.Client) *CachedProductRepo {
	return &CachedProductRepo{
		realRepo: realRepo,
		redis:    rdb,
		ttl:      5 * time.Minute,
	}
}

func (c *CachedProductRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == "notfound" {
			return nil, gorm.ErrRecordNotFound
		}

		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			log.Printf("Failed to unmarshal cached product (continuing with DB): %v", err)
			break
		}

		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		log.Printf("Redis error (continuing with DB): %v", err)
	}

	product, err := c.realRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if setErr := c.redis.Set(ctx, key, "notfound", 1*time.Minute).Err(); setErr != nil {
				log.Printf("Failed to cache notfound: %v", setErr)
			}
		}
		return nil, err
	}

	c.set(ctx, key, product)
	return product, nil
}

func (c *CachedProductRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	data, err := c.redis.Get(ctx, listKey).Bytes()
	if err == nil {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		log.Printf("Failed to unmarshal cached product list (continuing with DB): %v", err)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Redis error (continuing with DB): %v", err)
	}

	products, err := c.realRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	c.set(ctx, listKey, products)
	return products, nil
}

func (c *CachedProductRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	created, err := c.realRepo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, created.ID)
	return created, nil
}

func (c *CachedProductRepo) UpdateProduct(ctx context.Context, req transport.ProductRequest, id uint) (*models.Product, error) {
	updated, err := c.realRepo.UpdateProduct(ctx, req, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, id)
	return updated, nil
}

func (c *CachedProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	if err := c.realRepo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachedProductRepo) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal for cache: %v", err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

func (c *CachedProductRepo) invalidate(ctx context.Context, id uint) {
	if err := c.redis.Del(ctx, fmt.Sprintf("product:%d", id), listKey).Err(); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
}
