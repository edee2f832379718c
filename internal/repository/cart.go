package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createCart = `
INSERT INTO carts (customer_id)
VALUES ($1)
ON CONFLICT (customer_id) DO NOTHING`

// CreateCart provisions a cart for the customer. The UNIQUE constraint on
// customer_id makes provisioning idempotent; an existing cart is left alone.
func (q *Queries) CreateCart(ctx context.Context, customerID pgtype.UUID) error {
	_, err := q.db.Exec(ctx, createCart, customerID)
	return err
}

const getCartByID = `
SELECT id, customer_id, total_price, total_count
FROM carts
WHERE id = $1`

func (q *Queries) GetCartByID(ctx context.Context, id pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByID, id)
	var c Cart
	err := row.Scan(&c.ID, &c.CustomerID, &c.TotalPrice, &c.TotalCount)
	return c, err
}

const getCartByCustomerID = `
SELECT id, customer_id, total_price, total_count
FROM carts
WHERE customer_id = $1`

func (q *Queries) GetCartByCustomerID(ctx context.Context, customerID pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByCustomerID, customerID)
	var c Cart
	err := row.Scan(&c.ID, &c.CustomerID, &c.TotalPrice, &c.TotalCount)
	return c, err
}

const getCartTotals = `
SELECT COALESCE(SUM(price), 0), COALESCE(SUM(count), 0)
FROM cart_items
WHERE cart_id = $1`

// GetCartTotals aggregates a cart's items. COALESCE yields literal zeros for
// an empty cart rather than NULLs.
func (q *Queries) GetCartTotals(ctx context.Context, cartID pgtype.UUID) (CartTotalsRow, error) {
	row := q.db.QueryRow(ctx, getCartTotals, cartID)
	var t CartTotalsRow
	err := row.Scan(&t.TotalPrice, &t.TotalCount)
	return t, err
}

type UpdateCartTotalsParams struct {
	ID         pgtype.UUID
	TotalPrice pgtype.Numeric
	TotalCount int32
}

const updateCartTotals = `
UPDATE carts
SET total_price = $2, total_count = $3
WHERE id = $1`

func (q *Queries) UpdateCartTotals(ctx context.Context, arg UpdateCartTotalsParams) error {
	_, err := q.db.Exec(ctx, updateCartTotals, arg.ID, arg.TotalPrice, arg.TotalCount)
	return err
}

type GetCartItemParams struct {
	ID     pgtype.UUID
	CartID pgtype.UUID
}

const getCartItem = `
SELECT id, cart_id, product_id, count, price
FROM cart_items
WHERE id = $1 AND cart_id = $2`

func (q *Queries) GetCartItem(ctx context.Context, arg GetCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, getCartItem, arg.ID, arg.CartID)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Count, &i.Price)
	return i, err
}

type GetCartItemByProductParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
}

const getCartItemByProduct = `
SELECT id, cart_id, product_id, count, price
FROM cart_items
WHERE cart_id = $1 AND product_id = $2`

func (q *Queries) GetCartItemByProduct(ctx context.Context, arg GetCartItemByProductParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, getCartItemByProduct, arg.CartID, arg.ProductID)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Count, &i.Price)
	return i, err
}

type CreateCartItemParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Count     int32
	Price     pgtype.Numeric
}

const createCartItem = `
INSERT INTO cart_items (cart_id, product_id, count, price)
VALUES ($1, $2, $3, $4)
RETURNING id, cart_id, product_id, count, price`

func (q *Queries) CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, createCartItem, arg.CartID, arg.ProductID, arg.Count, arg.Price)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Count, &i.Price)
	return i, err
}

type UpdateCartItemParams struct {
	ID    pgtype.UUID
	Count int32
	Price pgtype.Numeric
}

const updateCartItem = `
UPDATE cart_items
SET count = $2, price = $3
WHERE id = $1
RETURNING id, cart_id, product_id, count, price`

func (q *Queries) UpdateCartItem(ctx context.Context, arg UpdateCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, updateCartItem, arg.ID, arg.Count, arg.Price)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Count, &i.Price)
	return i, err
}

type DeleteCartItemParams struct {
	ID     pgtype.UUID
	CartID pgtype.UUID
}

const deleteCartItem = `
DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartItem, arg.ID, arg.CartID)
	return tag.RowsAffected(), err
}

const listCartItemDetails = `
SELECT i.id, i.cart_id, i.product_id, i.count, i.price,
       ` + productDetailColumns + `
FROM cart_items i
JOIN products p ON p.id = i.product_id
JOIN subcategories s ON s.id = p.subcategory_id
JOIN categories c ON c.id = s.category_id
WHERE i.cart_id = $1
ORDER BY p.name`

func (q *Queries) ListCartItemDetails(ctx context.Context, cartID pgtype.UUID) ([]CartItemDetailRow, error) {
	rows, err := q.db.Query(ctx, listCartItemDetails, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItemDetailRow
	for rows.Next() {
		var d CartItemDetailRow
		if err := rows.Scan(&d.ID, &d.CartID, &d.ProductID, &d.Count, &d.Price,
			&d.Product.ID, &d.Product.SubcategoryID, &d.Product.Name, &d.Product.Slug,
			&d.Product.Price, &d.Product.ImageOne, &d.Product.ImageTwo, &d.Product.ImageThree,
			&d.Product.SubcategoryName, &d.Product.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const listCartIDsWithProduct = `
SELECT DISTINCT cart_id
FROM cart_items
WHERE product_id = $1`

// ListCartIDsWithProduct returns carts holding the product. Used to refresh
// totals after a catalog delete cascades through cart items.
func (q *Queries) ListCartIDsWithProduct(ctx context.Context, productID pgtype.UUID) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, listCartIDsWithProduct, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUUIDs(rows)
}

const listCartIDsWithSubcategory = `
SELECT DISTINCT i.cart_id
FROM cart_items i
JOIN products p ON p.id = i.product_id
WHERE p.subcategory_id = $1`

func (q *Queries) ListCartIDsWithSubcategory(ctx context.Context, subcategoryID pgtype.UUID) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, listCartIDsWithSubcategory, subcategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUUIDs(rows)
}

const listCartIDsWithCategory = `
SELECT DISTINCT i.cart_id
FROM cart_items i
JOIN products p ON p.id = i.product_id
JOIN subcategories s ON s.id = p.subcategory_id
WHERE s.category_id = $1`

func (q *Queries) ListCartIDsWithCategory(ctx context.Context, categoryID pgtype.UUID) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, listCartIDsWithCategory, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUUIDs(rows)
}
