package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the query surface services depend on. Tests substitute an
// in-memory implementation.
type Querier interface {
	// Customers and sessions
	CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (Customer, error)
	GetCustomerByID(ctx context.Context, id pgtype.UUID) (Customer, error)
	CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error)
	GetCustomerBySessionToken(ctx context.Context, token string) (Customer, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Catalog
	ListCategories(ctx context.Context) ([]Category, error)
	ListSubcategories(ctx context.Context) ([]Subcategory, error)
	ListProducts(ctx context.Context) ([]ProductDetailRow, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (ProductDetailRow, error)
	CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error)
	CreateSubcategory(ctx context.Context, arg CreateSubcategoryParams) (Subcategory, error)
	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	DeleteCategory(ctx context.Context, id pgtype.UUID) (int64, error)
	DeleteSubcategory(ctx context.Context, id pgtype.UUID) (int64, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error)

	// Carts and cart items
	CreateCart(ctx context.Context, customerID pgtype.UUID) error
	GetCartByID(ctx context.Context, id pgtype.UUID) (Cart, error)
	GetCartByCustomerID(ctx context.Context, customerID pgtype.UUID) (Cart, error)
	GetCartTotals(ctx context.Context, cartID pgtype.UUID) (CartTotalsRow, error)
	UpdateCartTotals(ctx context.Context, arg UpdateCartTotalsParams) error
	GetCartItem(ctx context.Context, arg GetCartItemParams) (CartItem, error)
	GetCartItemByProduct(ctx context.Context, arg GetCartItemByProductParams) (CartItem, error)
	CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error)
	UpdateCartItem(ctx context.Context, arg UpdateCartItemParams) (CartItem, error)
	DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error)
	ListCartItemDetails(ctx context.Context, cartID pgtype.UUID) ([]CartItemDetailRow, error)
	ListCartIDsWithProduct(ctx context.Context, productID pgtype.UUID) ([]pgtype.UUID, error)
	ListCartIDsWithSubcategory(ctx context.Context, subcategoryID pgtype.UUID) ([]pgtype.UUID, error)
	ListCartIDsWithCategory(ctx context.Context, categoryID pgtype.UUID) ([]pgtype.UUID, error)
}

// Compile-time check that Queries implements Querier.
var _ Querier = (*Queries)(nil)
