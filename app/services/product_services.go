package services

import (
	"context"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/cache"
)

// ProductCacheKey holds the cached product listing.
const ProductCacheKey = "products:all"

type ProductService struct {
	products *repositories.ProductRepository
	cache    *cache.Cache
}

// NewProductService builds the service. A nil or disabled cache reads
// straight from the database.
func NewProductService(products *repositories.ProductRepository, c *cache.Cache) *ProductService {
	return &ProductService{products: products, cache: c}
}

// All lists every product with its tags.
func (s *ProductService) All(ctx context.Context) ([]models.Product, error) {
	return cache.Remember(ctx, s.cache, ProductCacheKey, config.ProductCacheTTL(), func() ([]models.Product, error) {
		return s.products.All(ctx)
	})
}

// Invalidate drops the cached listing; the seeder calls it after writing.
func (s *ProductService) Invalidate(ctx context.Context) error {
	return s.cache.Forget(ctx, ProductCacheKey)
}
