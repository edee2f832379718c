package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"foodstore/internal/domain"
	"foodstore/internal/middleware"
)

// fakeCartService scripts one response per method for handler tests.
type fakeCartService struct {
	cart    *domain.Cart
	view    *domain.CartView
	item    *domain.CartItem
	removed bool
	err     error
}

func (f *fakeCartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCartService) GetCartForCustomer(ctx context.Context, customerID string) (*domain.CartView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeCartService) AddItem(ctx context.Context, cartID, productID string, count int32) (*domain.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func (f *fakeCartService) UpdateItem(ctx context.Context, cartID, itemID string, delta int32) (*domain.CartItem, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.item, f.removed, nil
}

func (f *fakeCartService) RemoveItem(ctx context.Context, cartID, itemID string) error {
	return f.err
}

func testID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func withCustomer(r *http.Request, customer *domain.Customer) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.CustomerContextKey, customer)
	return r.WithContext(ctx)
}

func TestGetCart(t *testing.T) {
	customerID := testID()
	cartID := testID()
	svc := &fakeCartService{
		view: &domain.CartView{
			Cart: domain.Cart{
				ID:         cartID,
				CustomerID: customerID,
				TotalPrice: decimal.RequireFromString("7.50"),
				TotalCount: 3,
			},
		},
	}
	h := NewCartHandler(svc)

	r := httptest.NewRequest("GET", "http://shop.example.com/cart/", nil)
	r = withCustomer(r, &domain.Customer{ID: customerID})
	w := httptest.NewRecorder()
	h.GetCart(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp CartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.ID != cartID.String() {
		t.Errorf("cart id = %q, want %q", resp.ID, cartID.String())
	}
	if !resp.TotalPrice.Equal(decimal.RequireFromString("7.50")) {
		t.Errorf("total_price = %s, want 7.50", resp.TotalPrice)
	}
	if resp.TotalCount != 3 {
		t.Errorf("total_count = %d, want 3", resp.TotalCount)
	}
	if resp.Items == nil {
		t.Error("items = null, want []")
	}
}

func TestGetCartUnauthenticated(t *testing.T) {
	h := NewCartHandler(&fakeCartService{})

	r := httptest.NewRequest("GET", "http://shop.example.com/cart/", nil)
	w := httptest.NewRecorder()
	h.GetCart(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAddItem(t *testing.T) {
	itemID := testID()
	productID := testID()
	svc := &fakeCartService{
		item: &domain.CartItem{
			ID:        itemID,
			CartID:    testID(),
			ProductID: productID,
			Count:     2,
			Price:     decimal.RequireFromString("5.00"),
		},
	}
	h := NewCartHandler(svc)

	body := `{"product": "` + productID.String() + `", "count": 2}`
	r := httptest.NewRequest("POST", "http://shop.example.com/cart/x/cart_item/", strings.NewReader(body))
	r.SetPathValue("cart_id", testID().String())
	w := httptest.NewRecorder()
	h.AddItem(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s, want 201", w.Code, w.Body.String())
	}

	var resp CartItemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.ID != itemID.String() {
		t.Errorf("item id = %q, want %q", resp.ID, itemID.String())
	}
	if resp.Product != productID.String() {
		t.Errorf("product = %q, want %q", resp.Product, productID.String())
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
}

func TestAddItemBadRequest(t *testing.T) {
	h := NewCartHandler(&fakeCartService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"product":`},
		{"missing product", `{"count": 2}`},
		{"malformed product id", `{"product": "not-a-uuid", "count": 2}`},
		{"zero count", `{"product": "` + testID().String() + `", "count": 0}`},
		{"unknown field", `{"product": "` + testID().String() + `", "count": 1, "color": "red"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "http://shop.example.com/cart/x/cart_item/", strings.NewReader(tt.body))
			r.SetPathValue("cart_id", testID().String())
			w := httptest.NewRecorder()
			h.AddItem(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s, want 400", w.Code, w.Body.String())
			}
		})
	}
}

func TestAddItemServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate product", domain.ErrDuplicateItem, http.StatusBadRequest},
		{"unknown product", domain.ErrProductNotFound, http.StatusNotFound},
		{"unknown cart", domain.ErrCartNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCartHandler(&fakeCartService{err: tt.err})

			body := `{"product": "` + testID().String() + `", "count": 1}`
			r := httptest.NewRequest("POST", "http://shop.example.com/cart/x/cart_item/", strings.NewReader(body))
			r.SetPathValue("cart_id", testID().String())
			w := httptest.NewRecorder()
			h.AddItem(w, r)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestUpdateItem(t *testing.T) {
	itemID := testID()
	svc := &fakeCartService{
		item: &domain.CartItem{
			ID:        itemID,
			CartID:    testID(),
			ProductID: testID(),
			Count:     3,
			Price:     decimal.RequireFromString("9.00"),
		},
	}
	h := NewCartHandler(svc)

	r := httptest.NewRequest("PATCH", "http://shop.example.com/cart/x/cart_item/y", strings.NewReader(`{"count": 1}`))
	r.SetPathValue("cart_id", testID().String())
	r.SetPathValue("item_id", itemID.String())
	w := httptest.NewRecorder()
	h.UpdateItem(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s, want 200", w.Code, w.Body.String())
	}

	var resp CartItemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("count = %d, want 3", resp.Count)
	}
}

func TestUpdateItemRemoved(t *testing.T) {
	h := NewCartHandler(&fakeCartService{removed: true})

	r := httptest.NewRequest("PATCH", "http://shop.example.com/cart/x/cart_item/y", strings.NewReader(`{"count": -2}`))
	r.SetPathValue("cart_id", testID().String())
	r.SetPathValue("item_id", testID().String())
	w := httptest.NewRecorder()
	h.UpdateItem(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !resp["deleted"] {
		t.Errorf("body = %s, want {\"deleted\": true}", w.Body.String())
	}
}

func TestRemoveItem(t *testing.T) {
	h := NewCartHandler(&fakeCartService{})

	r := httptest.NewRequest("DELETE", "http://shop.example.com/cart/x/cart_item/y", nil)
	r.SetPathValue("cart_id", testID().String())
	r.SetPathValue("item_id", testID().String())
	w := httptest.NewRecorder()
	h.RemoveItem(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}

func TestRemoveItemNotFound(t *testing.T) {
	h := NewCartHandler(&fakeCartService{err: domain.ErrCartItemNotFound})

	r := httptest.NewRequest("DELETE", "http://shop.example.com/cart/x/cart_item/y", nil)
	r.SetPathValue("cart_id", testID().String())
	r.SetPathValue("item_id", testID().String())
	w := httptest.NewRecorder()
	h.RemoveItem(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
