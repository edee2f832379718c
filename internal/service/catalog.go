package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"foodstore/internal/domain"
	"foodstore/internal/repository"
)

// maxPrice bounds prices to NUMERIC(8,2): at most 6 integer digits.
var maxPrice = decimal.New(1_000_000, 0)

// catalogService implements domain.CatalogService over the SQL store.
type catalogService struct {
	store repository.Store
}

var _ domain.CatalogService = (*catalogService)(nil)

// NewCatalogService creates a new SQL-backed catalog service.
func NewCatalogService(store repository.Store) domain.CatalogService {
	return &catalogService{store: store}
}

// ListCategories returns all categories with their nested subcategories.
func (s *catalogService) ListCategories(ctx context.Context) ([]domain.CategoryWithSubcategories, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to list categories")
	}

	subcategories, err := s.store.ListSubcategories(ctx)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to list subcategories")
	}

	byCategory := make(map[pgtype.UUID][]domain.Subcategory, len(categories))
	for _, sub := range subcategories {
		byCategory[sub.CategoryID] = append(byCategory[sub.CategoryID], domain.Subcategory{
			ID:         sub.ID,
			CategoryID: sub.CategoryID,
			Name:       sub.Name,
			Slug:       sub.Slug,
			Image:      sub.Image,
		})
	}

	result := make([]domain.CategoryWithSubcategories, len(categories))
	for i, c := range categories {
		result[i] = domain.CategoryWithSubcategories{
			Category: domain.Category{
				ID:    c.ID,
				Name:  c.Name,
				Slug:  c.Slug,
				Image: c.Image,
			},
			Subcategories: byCategory[c.ID],
		}
	}

	return result, nil
}

// ListProducts returns all products with subcategory and category names
// resolved.
func (s *catalogService) ListProducts(ctx context.Context) ([]domain.ProductDetail, error) {
	rows, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_products", "failed to list products")
	}

	products := make([]domain.ProductDetail, len(rows))
	for i, row := range rows {
		products[i] = mapProductDetail(row)
	}

	return products, nil
}

// GetProduct returns a single product with resolved names.
func (s *catalogService) GetProduct(ctx context.Context, productID string) (*domain.ProductDetail, error) {
	var productUUID pgtype.UUID
	if err := productUUID.Scan(productID); err != nil {
		return nil, domain.ErrProductNotFound
	}

	row, err := s.store.GetProductByID(ctx, productUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.get_product", "failed to get product")
	}

	detail := mapProductDetail(row)
	return &detail, nil
}

// CreateCategory creates a category with a slug derived from its name.
func (s *catalogService) CreateCategory(ctx context.Context, params domain.CreateCategoryParams) (*domain.Category, error) {
	if params.Name == "" {
		return nil, domain.Invalid("catalog.create_category", "name is required")
	}

	row, err := s.store.CreateCategory(ctx, repository.CreateCategoryParams{
		Name:  params.Name,
		Slug:  slug.Make(params.Name),
		Image: params.Image,
	})
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_category", "failed to create category")
	}

	return &domain.Category{
		ID:    row.ID,
		Name:  row.Name,
		Slug:  row.Slug,
		Image: row.Image,
	}, nil
}

// CreateSubcategory creates a subcategory under an existing category.
func (s *catalogService) CreateSubcategory(ctx context.Context, params domain.CreateSubcategoryParams) (*domain.Subcategory, error) {
	if params.Name == "" {
		return nil, domain.Invalid("catalog.create_subcategory", "name is required")
	}

	var categoryUUID pgtype.UUID
	if err := categoryUUID.Scan(params.CategoryID); err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	row, err := s.store.CreateSubcategory(ctx, repository.CreateSubcategoryParams{
		CategoryID: categoryUUID,
		Name:       params.Name,
		Slug:       slug.Make(params.Name),
		Image:      params.Image,
	})
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_subcategory", "failed to create subcategory")
	}

	return &domain.Subcategory{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Name:       row.Name,
		Slug:       row.Slug,
		Image:      row.Image,
	}, nil
}

// CreateProduct creates a product under an existing subcategory.
func (s *catalogService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.ProductDetail, error) {
	if params.Name == "" {
		return nil, domain.Invalid("catalog.create_product", "name is required")
	}
	if err := validatePrice(params.Price); err != nil {
		return nil, err
	}

	var subcategoryUUID pgtype.UUID
	if err := subcategoryUUID.Scan(params.SubcategoryID); err != nil {
		return nil, domain.ErrSubcategoryNotFound
	}

	row, err := s.store.CreateProduct(ctx, repository.CreateProductParams{
		SubcategoryID: subcategoryUUID,
		Name:          params.Name,
		Slug:          slug.Make(params.Name),
		Price:         repository.DecimalToNumeric(params.Price),
		ImageOne:      params.ImageOne,
		ImageTwo:      params.ImageTwo,
		ImageThree:    params.ImageThree,
	})
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_product", "failed to create product")
	}

	return s.GetProduct(ctx, row.ID.String())
}

// DeleteCategory removes a category. Dependent subcategories, products and
// cart items cascade; affected carts get their totals refreshed in the same
// transaction.
func (s *catalogService) DeleteCategory(ctx context.Context, categoryID string) error {
	var categoryUUID pgtype.UUID
	if err := categoryUUID.Scan(categoryID); err != nil {
		return domain.ErrCategoryNotFound
	}

	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		affected, err := q.ListCartIDsWithCategory(ctx, categoryUUID)
		if err != nil {
			return domain.Internal(err, "catalog.delete_category", "failed to find affected carts")
		}

		deleted, err := q.DeleteCategory(ctx, categoryUUID)
		if err != nil {
			return domain.Internal(err, "catalog.delete_category", "failed to delete category")
		}
		if deleted == 0 {
			return domain.ErrCategoryNotFound
		}

		return refreshCarts(ctx, q, affected)
	})
}

// DeleteSubcategory removes a subcategory with the same cascade handling as
// DeleteCategory.
func (s *catalogService) DeleteSubcategory(ctx context.Context, subcategoryID string) error {
	var subcategoryUUID pgtype.UUID
	if err := subcategoryUUID.Scan(subcategoryID); err != nil {
		return domain.ErrSubcategoryNotFound
	}

	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		affected, err := q.ListCartIDsWithSubcategory(ctx, subcategoryUUID)
		if err != nil {
			return domain.Internal(err, "catalog.delete_subcategory", "failed to find affected carts")
		}

		deleted, err := q.DeleteSubcategory(ctx, subcategoryUUID)
		if err != nil {
			return domain.Internal(err, "catalog.delete_subcategory", "failed to delete subcategory")
		}
		if deleted == 0 {
			return domain.ErrSubcategoryNotFound
		}

		return refreshCarts(ctx, q, affected)
	})
}

// DeleteProduct removes a product; its cart items cascade and the owning
// carts get their totals refreshed in the same transaction.
func (s *catalogService) DeleteProduct(ctx context.Context, productID string) error {
	var productUUID pgtype.UUID
	if err := productUUID.Scan(productID); err != nil {
		return domain.ErrProductNotFound
	}

	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		affected, err := q.ListCartIDsWithProduct(ctx, productUUID)
		if err != nil {
			return domain.Internal(err, "catalog.delete_product", "failed to find affected carts")
		}

		deleted, err := q.DeleteProduct(ctx, productUUID)
		if err != nil {
			return domain.Internal(err, "catalog.delete_product", "failed to delete product")
		}
		if deleted == 0 {
			return domain.ErrProductNotFound
		}

		return refreshCarts(ctx, q, affected)
	})
}

func refreshCarts(ctx context.Context, q repository.Querier, cartIDs []pgtype.UUID) error {
	for _, cartID := range cartIDs {
		if err := refreshCartTotals(ctx, q, cartID); err != nil {
			return err
		}
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.Sign() <= 0 {
		return domain.Invalid("catalog.validate_price", "price must be greater than 0")
	}
	if price.Exponent() < -2 {
		return domain.Invalid("catalog.validate_price", "price cannot have more than 2 decimal places")
	}
	if price.Cmp(maxPrice) >= 0 {
		return domain.Invalid("catalog.validate_price", "price cannot exceed 6 integer digits")
	}
	return nil
}

func mapProductDetail(row repository.ProductDetailRow) domain.ProductDetail {
	return domain.ProductDetail{
		Product: domain.Product{
			ID:            row.ID,
			SubcategoryID: row.SubcategoryID,
			Name:          row.Name,
			Slug:          row.Slug,
			Price:         repository.NumericToDecimal(row.Price),
			ImageOne:      row.ImageOne,
			ImageTwo:      row.ImageTwo,
			ImageThree:    row.ImageThree,
		},
		SubcategoryName: row.SubcategoryName,
		CategoryName:    row.CategoryName,
	}
}
