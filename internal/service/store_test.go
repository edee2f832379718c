package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"foodstore/internal/repository"
)

// fakeStore is an in-memory repository.Store for service tests. ExecTx runs
// the callback against the same state, which is enough to exercise the
// service logic; transactional rollback is the real store's concern.
type fakeStore struct {
	customers     []repository.Customer
	sessions      []repository.Session
	categories    []repository.Category
	subcategories []repository.Subcategory
	products      []repository.Product
	carts         []repository.Cart
	items         []repository.CartItem
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func numeric(s string) pgtype.Numeric {
	return repository.DecimalToNumeric(decimal.RequireFromString(s))
}

func (f *fakeStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	return fn(f)
}

// ---- customers and sessions ----

func (f *fakeStore) CreateCustomer(ctx context.Context, arg repository.CreateCustomerParams) (repository.Customer, error) {
	c := repository.Customer{
		ID:           newID(),
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		AccountType:  arg.AccountType,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.customers = append(f.customers, c)
	return c, nil
}

func (f *fakeStore) GetCustomerByEmail(ctx context.Context, email string) (repository.Customer, error) {
	for _, c := range f.customers {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return repository.Customer{}, pgx.ErrNoRows
}

func (f *fakeStore) GetCustomerByID(ctx context.Context, id pgtype.UUID) (repository.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Customer{}, pgx.ErrNoRows
}

func (f *fakeStore) CreateSession(ctx context.Context, arg repository.CreateSessionParams) (repository.Session, error) {
	s := repository.Session{
		ID:         newID(),
		CustomerID: arg.CustomerID,
		Token:      arg.Token,
		ExpiresAt:  arg.ExpiresAt,
		CreatedAt:  pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeStore) GetCustomerBySessionToken(ctx context.Context, token string) (repository.Customer, error) {
	for _, s := range f.sessions {
		if s.Token == token && s.ExpiresAt.Time.After(time.Now()) {
			return f.GetCustomerByID(ctx, s.CustomerID)
		}
	}
	return repository.Customer{}, pgx.ErrNoRows
}

func (f *fakeStore) DeleteSession(ctx context.Context, token string) error {
	for i, s := range f.sessions {
		if s.Token == token {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	var kept []repository.Session
	var deleted int64
	for _, s := range f.sessions {
		if s.ExpiresAt.Time.After(time.Now()) {
			kept = append(kept, s)
		} else {
			deleted++
		}
	}
	f.sessions = kept
	return deleted, nil
}

// ---- catalog ----

func (f *fakeStore) ListCategories(ctx context.Context) ([]repository.Category, error) {
	return append([]repository.Category(nil), f.categories...), nil
}

func (f *fakeStore) ListSubcategories(ctx context.Context) ([]repository.Subcategory, error) {
	return append([]repository.Subcategory(nil), f.subcategories...), nil
}

func (f *fakeStore) detailFor(p repository.Product) repository.ProductDetailRow {
	d := repository.ProductDetailRow{Product: p}
	for _, s := range f.subcategories {
		if s.ID == p.SubcategoryID {
			d.SubcategoryName = s.Name
			for _, c := range f.categories {
				if c.ID == s.CategoryID {
					d.CategoryName = c.Name
				}
			}
		}
	}
	return d
}

func (f *fakeStore) ListProducts(ctx context.Context) ([]repository.ProductDetailRow, error) {
	rows := make([]repository.ProductDetailRow, 0, len(f.products))
	for _, p := range f.products {
		rows = append(rows, f.detailFor(p))
	}
	return rows, nil
}

func (f *fakeStore) GetProductByID(ctx context.Context, id pgtype.UUID) (repository.ProductDetailRow, error) {
	for _, p := range f.products {
		if p.ID == id {
			return f.detailFor(p), nil
		}
	}
	return repository.ProductDetailRow{}, pgx.ErrNoRows
}

func (f *fakeStore) CreateCategory(ctx context.Context, arg repository.CreateCategoryParams) (repository.Category, error) {
	c := repository.Category{ID: newID(), Name: arg.Name, Slug: arg.Slug, Image: arg.Image}
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeStore) CreateSubcategory(ctx context.Context, arg repository.CreateSubcategoryParams) (repository.Subcategory, error) {
	s := repository.Subcategory{ID: newID(), CategoryID: arg.CategoryID, Name: arg.Name, Slug: arg.Slug, Image: arg.Image}
	f.subcategories = append(f.subcategories, s)
	return s, nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	p := repository.Product{
		ID:            newID(),
		SubcategoryID: arg.SubcategoryID,
		Name:          arg.Name,
		Slug:          arg.Slug,
		Price:         arg.Price,
		ImageOne:      arg.ImageOne,
		ImageTwo:      arg.ImageTwo,
		ImageThree:    arg.ImageThree,
	}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeStore) DeleteCategory(ctx context.Context, id pgtype.UUID) (int64, error) {
	var found int64
	var kept []repository.Category
	for _, c := range f.categories {
		if c.ID == id {
			found++
			continue
		}
		kept = append(kept, c)
	}
	f.categories = kept
	for _, s := range append([]repository.Subcategory(nil), f.subcategories...) {
		if s.CategoryID == id {
			_, _ = f.DeleteSubcategory(ctx, s.ID)
		}
	}
	return found, nil
}

func (f *fakeStore) DeleteSubcategory(ctx context.Context, id pgtype.UUID) (int64, error) {
	var found int64
	var kept []repository.Subcategory
	for _, s := range f.subcategories {
		if s.ID == id {
			found++
			continue
		}
		kept = append(kept, s)
	}
	f.subcategories = kept
	for _, p := range append([]repository.Product(nil), f.products...) {
		if p.SubcategoryID == id {
			_, _ = f.DeleteProduct(ctx, p.ID)
		}
	}
	return found, nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error) {
	var found int64
	var kept []repository.Product
	for _, p := range f.products {
		if p.ID == id {
			found++
			continue
		}
		kept = append(kept, p)
	}
	f.products = kept

	var keptItems []repository.CartItem
	for _, i := range f.items {
		if i.ProductID != id {
			keptItems = append(keptItems, i)
		}
	}
	f.items = keptItems
	return found, nil
}

// ---- carts and cart items ----

func (f *fakeStore) CreateCart(ctx context.Context, customerID pgtype.UUID) error {
	for _, c := range f.carts {
		if c.CustomerID == customerID {
			return nil
		}
	}
	f.carts = append(f.carts, repository.Cart{
		ID:         newID(),
		CustomerID: customerID,
		TotalPrice: numeric("0"),
		TotalCount: 0,
	})
	return nil
}

func (f *fakeStore) GetCartByID(ctx context.Context, id pgtype.UUID) (repository.Cart, error) {
	for _, c := range f.carts {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (f *fakeStore) GetCartByCustomerID(ctx context.Context, customerID pgtype.UUID) (repository.Cart, error) {
	for _, c := range f.carts {
		if c.CustomerID == customerID {
			return c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (f *fakeStore) GetCartTotals(ctx context.Context, cartID pgtype.UUID) (repository.CartTotalsRow, error) {
	price := decimal.Zero
	var count int64
	for _, i := range f.items {
		if i.CartID == cartID {
			price = price.Add(repository.NumericToDecimal(i.Price))
			count += int64(i.Count)
		}
	}
	return repository.CartTotalsRow{
		TotalPrice: repository.DecimalToNumeric(price),
		TotalCount: count,
	}, nil
}

func (f *fakeStore) UpdateCartTotals(ctx context.Context, arg repository.UpdateCartTotalsParams) error {
	for i, c := range f.carts {
		if c.ID == arg.ID {
			f.carts[i].TotalPrice = arg.TotalPrice
			f.carts[i].TotalCount = arg.TotalCount
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) GetCartItem(ctx context.Context, arg repository.GetCartItemParams) (repository.CartItem, error) {
	for _, i := range f.items {
		if i.ID == arg.ID && i.CartID == arg.CartID {
			return i, nil
		}
	}
	return repository.CartItem{}, pgx.ErrNoRows
}

func (f *fakeStore) GetCartItemByProduct(ctx context.Context, arg repository.GetCartItemByProductParams) (repository.CartItem, error) {
	for _, i := range f.items {
		if i.CartID == arg.CartID && i.ProductID == arg.ProductID {
			return i, nil
		}
	}
	return repository.CartItem{}, pgx.ErrNoRows
}

func (f *fakeStore) CreateCartItem(ctx context.Context, arg repository.CreateCartItemParams) (repository.CartItem, error) {
	item := repository.CartItem{
		ID:        newID(),
		CartID:    arg.CartID,
		ProductID: arg.ProductID,
		Count:     arg.Count,
		Price:     arg.Price,
	}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeStore) UpdateCartItem(ctx context.Context, arg repository.UpdateCartItemParams) (repository.CartItem, error) {
	for i, item := range f.items {
		if item.ID == arg.ID {
			f.items[i].Count = arg.Count
			f.items[i].Price = arg.Price
			return f.items[i], nil
		}
	}
	return repository.CartItem{}, pgx.ErrNoRows
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, arg repository.DeleteCartItemParams) (int64, error) {
	for i, item := range f.items {
		if item.ID == arg.ID && item.CartID == arg.CartID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeStore) ListCartItemDetails(ctx context.Context, cartID pgtype.UUID) ([]repository.CartItemDetailRow, error) {
	var rows []repository.CartItemDetailRow
	for _, i := range f.items {
		if i.CartID != cartID {
			continue
		}
		d := repository.CartItemDetailRow{CartItem: i}
		for _, p := range f.products {
			if p.ID == i.ProductID {
				d.Product = f.detailFor(p)
			}
		}
		rows = append(rows, d)
	}
	return rows, nil
}

func (f *fakeStore) ListCartIDsWithProduct(ctx context.Context, productID pgtype.UUID) ([]pgtype.UUID, error) {
	seen := map[pgtype.UUID]bool{}
	var ids []pgtype.UUID
	for _, i := range f.items {
		if i.ProductID == productID && !seen[i.CartID] {
			seen[i.CartID] = true
			ids = append(ids, i.CartID)
		}
	}
	return ids, nil
}

func (f *fakeStore) ListCartIDsWithSubcategory(ctx context.Context, subcategoryID pgtype.UUID) ([]pgtype.UUID, error) {
	seen := map[pgtype.UUID]bool{}
	var ids []pgtype.UUID
	for _, i := range f.items {
		for _, p := range f.products {
			if p.ID == i.ProductID && p.SubcategoryID == subcategoryID && !seen[i.CartID] {
				seen[i.CartID] = true
				ids = append(ids, i.CartID)
			}
		}
	}
	return ids, nil
}

func (f *fakeStore) ListCartIDsWithCategory(ctx context.Context, categoryID pgtype.UUID) ([]pgtype.UUID, error) {
	seen := map[pgtype.UUID]bool{}
	var ids []pgtype.UUID
	for _, i := range f.items {
		for _, p := range f.products {
			if p.ID != i.ProductID {
				continue
			}
			for _, s := range f.subcategories {
				if s.ID == p.SubcategoryID && s.CategoryID == categoryID && !seen[i.CartID] {
					seen[i.CartID] = true
					ids = append(ids, i.CartID)
				}
			}
		}
	}
	return ids, nil
}

// ---- fixtures ----

// seedCatalog creates one category/subcategory and a product at the given
// price, returning the product ID.
func (f *fakeStore) seedCatalog(price string) pgtype.UUID {
	cat, _ := f.CreateCategory(context.Background(), repository.CreateCategoryParams{Name: "Fruits", Slug: "fruits"})
	sub, _ := f.CreateSubcategory(context.Background(), repository.CreateSubcategoryParams{CategoryID: cat.ID, Name: "Citrus", Slug: "citrus"})
	p, _ := f.CreateProduct(context.Background(), repository.CreateProductParams{
		SubcategoryID: sub.ID,
		Name:          "Orange",
		Slug:          "orange",
		Price:         numeric(price),
	})
	return p.ID
}

// productParams builds create params for another product under the first
// seeded subcategory.
func (f *fakeStore) productParams(name, slugVal, price string) repository.CreateProductParams {
	return repository.CreateProductParams{
		SubcategoryID: f.subcategories[0].ID,
		Name:          name,
		Slug:          slugVal,
		Price:         numeric(price),
	}
}

// seedCart creates a customer with a cart and returns the cart.
func (f *fakeStore) seedCart() repository.Cart {
	customer, _ := f.CreateCustomer(context.Background(), repository.CreateCustomerParams{
		Email:        "shopper@example.com",
		PasswordHash: "x",
		AccountType:  "customer",
	})
	_ = f.CreateCart(context.Background(), customer.ID)
	cart, _ := f.GetCartByCustomerID(context.Background(), customer.ID)
	return cart
}
