package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listCategories = `
SELECT id, name, slug, image
FROM categories
ORDER BY name`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const listSubcategories = `
SELECT id, category_id, name, slug, image
FROM subcategories
ORDER BY name`

func (q *Queries) ListSubcategories(ctx context.Context) ([]Subcategory, error) {
	rows, err := q.db.Query(ctx, listSubcategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subcategories []Subcategory
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.Image); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, s)
	}
	return subcategories, rows.Err()
}

const productDetailColumns = `
p.id, p.subcategory_id, p.name, p.slug, p.price,
p.image_one, p.image_two, p.image_three,
s.name AS subcategory_name, c.name AS category_name`

const listProducts = `
SELECT ` + productDetailColumns + `
FROM products p
JOIN subcategories s ON s.id = p.subcategory_id
JOIN categories c ON c.id = s.category_id
ORDER BY p.name`

func scanProductDetail(row interface{ Scan(dest ...any) error }) (ProductDetailRow, error) {
	var p ProductDetailRow
	err := row.Scan(&p.ID, &p.SubcategoryID, &p.Name, &p.Slug, &p.Price,
		&p.ImageOne, &p.ImageTwo, &p.ImageThree,
		&p.SubcategoryName, &p.CategoryName)
	return p, err
}

func (q *Queries) ListProducts(ctx context.Context) ([]ProductDetailRow, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []ProductDetailRow
	for rows.Next() {
		p, err := scanProductDetail(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const getProductByID = `
SELECT ` + productDetailColumns + `
FROM products p
JOIN subcategories s ON s.id = p.subcategory_id
JOIN categories c ON c.id = s.category_id
WHERE p.id = $1`

func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (ProductDetailRow, error) {
	return scanProductDetail(q.db.QueryRow(ctx, getProductByID, id))
}

type CreateCategoryParams struct {
	Name  string
	Slug  string
	Image string
}

const createCategory = `
INSERT INTO categories (name, slug, image)
VALUES ($1, $2, $3)
RETURNING id, name, slug, image`

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, createCategory, arg.Name, arg.Slug, arg.Image)
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Image)
	return c, err
}

type CreateSubcategoryParams struct {
	CategoryID pgtype.UUID
	Name       string
	Slug       string
	Image      string
}

const createSubcategory = `
INSERT INTO subcategories (category_id, name, slug, image)
VALUES ($1, $2, $3, $4)
RETURNING id, category_id, name, slug, image`

func (q *Queries) CreateSubcategory(ctx context.Context, arg CreateSubcategoryParams) (Subcategory, error) {
	row := q.db.QueryRow(ctx, createSubcategory, arg.CategoryID, arg.Name, arg.Slug, arg.Image)
	var s Subcategory
	err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.Image)
	return s, err
}

type CreateProductParams struct {
	SubcategoryID pgtype.UUID
	Name          string
	Slug          string
	Price         pgtype.Numeric
	ImageOne      string
	ImageTwo      string
	ImageThree    string
}

const createProduct = `
INSERT INTO products (subcategory_id, name, slug, price, image_one, image_two, image_three)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, subcategory_id, name, slug, price, image_one, image_two, image_three`

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct, arg.SubcategoryID, arg.Name, arg.Slug,
		arg.Price, arg.ImageOne, arg.ImageTwo, arg.ImageThree)
	var p Product
	err := row.Scan(&p.ID, &p.SubcategoryID, &p.Name, &p.Slug, &p.Price,
		&p.ImageOne, &p.ImageTwo, &p.ImageThree)
	return p, err
}

const deleteCategory = `DELETE FROM categories WHERE id = $1`

// DeleteCategory removes a category; dependent subcategories, products and
// cart items go with it via ON DELETE CASCADE.
func (q *Queries) DeleteCategory(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCategory, id)
	return tag.RowsAffected(), err
}

const deleteSubcategory = `DELETE FROM subcategories WHERE id = $1`

func (q *Queries) DeleteSubcategory(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteSubcategory, id)
	return tag.RowsAffected(), err
}

const deleteProduct = `DELETE FROM products WHERE id = $1`

func (q *Queries) DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteProduct, id)
	return tag.RowsAffected(), err
}
