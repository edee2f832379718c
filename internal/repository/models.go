package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Row types mirror the database schema. Monetary columns are NUMERIC(8,2)
// and surface here as pgtype.Numeric; services convert to decimal.Decimal.

type Customer struct {
	ID           pgtype.UUID
	Email        string
	PasswordHash string
	FirstName    pgtype.Text
	LastName     pgtype.Text
	AccountType  string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type Session struct {
	ID         pgtype.UUID
	CustomerID pgtype.UUID
	Token      string
	ExpiresAt  pgtype.Timestamptz
	CreatedAt  pgtype.Timestamptz
}

type Category struct {
	ID    pgtype.UUID
	Name  string
	Slug  string
	Image string
}

type Subcategory struct {
	ID         pgtype.UUID
	CategoryID pgtype.UUID
	Name       string
	Slug       string
	Image      string
}

type Product struct {
	ID            pgtype.UUID
	SubcategoryID pgtype.UUID
	Name          string
	Slug          string
	Price         pgtype.Numeric
	ImageOne      string
	ImageTwo      string
	ImageThree    string
}

// ProductDetailRow is a product joined with its subcategory and category
// names.
type ProductDetailRow struct {
	Product
	SubcategoryName string
	CategoryName    string
}

type Cart struct {
	ID         pgtype.UUID
	CustomerID pgtype.UUID
	TotalPrice pgtype.Numeric
	TotalCount int32
}

type CartItem struct {
	ID        pgtype.UUID
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Count     int32
	Price     pgtype.Numeric
}

// CartItemDetailRow is a cart item joined with its product detail.
type CartItemDetailRow struct {
	CartItem
	Product ProductDetailRow
}

// CartTotalsRow is the aggregate over a cart's items. COALESCE in the query
// guarantees zeros for an empty cart rather than NULLs.
type CartTotalsRow struct {
	TotalPrice pgtype.Numeric
	TotalCount int64
}
