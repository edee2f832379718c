package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"foodstore/internal/domain"
)

// Cache keys for catalog listings. The catalog is read-mostly, so listings
// are cached whole and dropped on any admin mutation.
const (
	categoriesCacheKey = "catalog:categories"
	productsCacheKey   = "catalog:products"
)

// cachedCatalogService decorates a CatalogService with a Redis read-through
// cache for the two listing endpoints. All other calls pass through.
type cachedCatalogService struct {
	inner  domain.CatalogService
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ domain.CatalogService = (*cachedCatalogService)(nil)

// NewCachedCatalogService wraps inner with a Redis listing cache.
func NewCachedCatalogService(inner domain.CatalogService, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) domain.CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedCatalogService{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// ListCategories serves the category listing from cache when possible.
func (s *cachedCatalogService) ListCategories(ctx context.Context) ([]domain.CategoryWithSubcategories, error) {
	var cached []domain.CategoryWithSubcategories
	if s.readCache(ctx, categoriesCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.inner.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, categoriesCacheKey, categories)
	return categories, nil
}

// ListProducts serves the product listing from cache when possible.
func (s *cachedCatalogService) ListProducts(ctx context.Context) ([]domain.ProductDetail, error) {
	var cached []domain.ProductDetail
	if s.readCache(ctx, productsCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, productsCacheKey, products)
	return products, nil
}

func (s *cachedCatalogService) GetProduct(ctx context.Context, productID string) (*domain.ProductDetail, error) {
	return s.inner.GetProduct(ctx, productID)
}

func (s *cachedCatalogService) CreateCategory(ctx context.Context, params domain.CreateCategoryParams) (*domain.Category, error) {
	category, err := s.inner.CreateCategory(ctx, params)
	if err == nil {
		s.invalidate(ctx)
	}
	return category, err
}

func (s *cachedCatalogService) CreateSubcategory(ctx context.Context, params domain.CreateSubcategoryParams) (*domain.Subcategory, error) {
	subcategory, err := s.inner.CreateSubcategory(ctx, params)
	if err == nil {
		s.invalidate(ctx)
	}
	return subcategory, err
}

func (s *cachedCatalogService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.ProductDetail, error) {
	product, err := s.inner.CreateProduct(ctx, params)
	if err == nil {
		s.invalidate(ctx)
	}
	return product, err
}

func (s *cachedCatalogService) DeleteCategory(ctx context.Context, categoryID string) error {
	err := s.inner.DeleteCategory(ctx, categoryID)
	if err == nil {
		s.invalidate(ctx)
	}
	return err
}

func (s *cachedCatalogService) DeleteSubcategory(ctx context.Context, subcategoryID string) error {
	err := s.inner.DeleteSubcategory(ctx, subcategoryID)
	if err == nil {
		s.invalidate(ctx)
	}
	return err
}

func (s *cachedCatalogService) DeleteProduct(ctx context.Context, productID string) error {
	err := s.inner.DeleteProduct(ctx, productID)
	if err == nil {
		s.invalidate(ctx)
	}
	return err
}

// readCache loads a cached listing. Cache failures are logged and treated as
// misses; the store remains the source of truth.
func (s *cachedCatalogService) readCache(ctx context.Context, key string, dest interface{}) bool {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Debug("catalog cache entry corrupt, dropping", "key", key, "error", err)
		s.rdb.Del(ctx, key)
		return false
	}

	return true
}

func (s *cachedCatalogService) writeCache(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("catalog cache marshal failed", "key", key, "error", err)
		return
	}

	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Debug("catalog cache write failed", "key", key, "error", err)
	}
}

func (s *cachedCatalogService) invalidate(ctx context.Context) {
	if err := s.rdb.Del(ctx, categoriesCacheKey, productsCacheKey).Err(); err != nil {
		s.logger.Debug("catalog cache invalidation failed", "error", err)
	}
}
