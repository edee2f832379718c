package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG DOMAIN ERRORS
// =============================================================================

var (
	ErrCategoryNotFound    = &Error{Code: ENOTFOUND, Message: "Category not found"}
	ErrSubcategoryNotFound = &Error{Code: ENOTFOUND, Message: "Subcategory not found"}
	ErrProductNotFound     = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// CatalogService provides read views of the category/subcategory/product
// hierarchy plus the admin-side mutations that manage it.
type CatalogService interface {
	// ListCategories returns all categories with their nested subcategories.
	ListCategories(ctx context.Context) ([]CategoryWithSubcategories, error)

	// ListProducts returns all products with their subcategory and category
	// names resolved.
	ListProducts(ctx context.Context) ([]ProductDetail, error)

	// GetProduct returns a single product with resolved names.
	GetProduct(ctx context.Context, productID string) (*ProductDetail, error)

	// Admin operations. Slugs are derived from names; deletes cascade to
	// dependent rows (subcategories, products, cart items).
	CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error)
	CreateSubcategory(ctx context.Context, params CreateSubcategoryParams) (*Subcategory, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*ProductDetail, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	DeleteSubcategory(ctx context.Context, subcategoryID string) error
	DeleteProduct(ctx context.Context, productID string) error
}

// Category is a top-level catalog section.
// Image holds the stored file's relative path; presentation composes the
// absolute URL from the serving host.
type Category struct {
	ID    pgtype.UUID
	Name  string
	Slug  string
	Image string
}

// Subcategory belongs to exactly one category.
type Subcategory struct {
	ID         pgtype.UUID
	CategoryID pgtype.UUID
	Name       string
	Slug       string
	Image      string
}

// CategoryWithSubcategories is the category listing view.
type CategoryWithSubcategories struct {
	Category
	Subcategories []Subcategory
}

// Product belongs to exactly one subcategory and carries exactly three
// image references. Price is a fixed-point amount with 2 decimal places.
type Product struct {
	ID            pgtype.UUID
	SubcategoryID pgtype.UUID
	Name          string
	Slug          string
	Price         decimal.Decimal
	ImageOne      string
	ImageTwo      string
	ImageThree    string
}

// Images returns the product's three image paths in order.
func (p Product) Images() []string {
	return []string{p.ImageOne, p.ImageTwo, p.ImageThree}
}

// ProductDetail is the product listing view: the product plus its category
// name resolved by walking subcategory -> category.
type ProductDetail struct {
	Product
	SubcategoryName string
	CategoryName    string
}

// CreateCategoryParams holds admin input for creating a category.
type CreateCategoryParams struct {
	Name  string
	Image string
}

// CreateSubcategoryParams holds admin input for creating a subcategory.
type CreateSubcategoryParams struct {
	CategoryID string
	Name       string
	Image      string
}

// CreateProductParams holds admin input for creating a product.
type CreateProductParams struct {
	SubcategoryID string
	Name          string
	Price         decimal.Decimal
	ImageOne      string
	ImageTwo      string
	ImageThree    string
}
