package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"foodstore/internal/domain"
)

// fakeCustomerService resolves every session token to the same customer.
type fakeCustomerService struct {
	customer *domain.Customer
	err      error
}

func (f *fakeCustomerService) Register(ctx context.Context, params domain.RegisterParams) (*domain.Customer, error) {
	return f.customer, f.err
}

func (f *fakeCustomerService) Authenticate(ctx context.Context, email, password string) (*domain.Customer, error) {
	return f.customer, f.err
}

func (f *fakeCustomerService) CreateSession(ctx context.Context, customerID string) (string, error) {
	return "token", f.err
}

func (f *fakeCustomerService) GetCustomerBySessionToken(ctx context.Context, token string) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customer, nil
}

func (f *fakeCustomerService) DeleteSession(ctx context.Context, token string) error {
	return f.err
}

func testID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func withCustomer(r *http.Request, customer *domain.Customer) *http.Request {
	ctx := context.WithValue(r.Context(), CustomerContextKey, customer)
	return r.WithContext(ctx)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestWithCustomer(t *testing.T) {
	customer := &domain.Customer{ID: testID(), Email: "anna@example.com"}
	svc := &fakeCustomerService{customer: customer}

	var got *domain.Customer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetCustomerFromContext(r.Context())
	})

	t.Run("valid session cookie", func(t *testing.T) {
		got = nil
		r := httptest.NewRequest("GET", "/cart/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "token"})
		WithCustomer(svc)(next).ServeHTTP(httptest.NewRecorder(), r)

		if got == nil || got.Email != "anna@example.com" {
			t.Errorf("customer in context = %+v, want anna@example.com", got)
		}
	})

	t.Run("no cookie continues anonymous", func(t *testing.T) {
		got = customer
		r := httptest.NewRequest("GET", "/cart/", nil)
		WithCustomer(svc)(next).ServeHTTP(httptest.NewRecorder(), r)

		if got != nil {
			t.Errorf("customer in context = %+v, want nil", got)
		}
	})

	t.Run("expired session continues anonymous", func(t *testing.T) {
		got = customer
		bad := &fakeCustomerService{err: domain.ErrSessionNotFound}
		r := httptest.NewRequest("GET", "/cart/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
		WithCustomer(bad)(next).ServeHTTP(httptest.NewRecorder(), r)

		if got != nil {
			t.Errorf("customer in context = %+v, want nil", got)
		}
	})
}

func TestRequireCustomer(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		var called bool
		r := httptest.NewRequest("GET", "/cart/", nil)
		r = withCustomer(r, &domain.Customer{ID: testID()})
		w := httptest.NewRecorder()
		RequireCustomer(okHandler(&called)).ServeHTTP(w, r)

		if !called || w.Code != http.StatusOK {
			t.Errorf("called = %v, status = %d, want handler called with 200", called, w.Code)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		var called bool
		r := httptest.NewRequest("GET", "/cart/", nil)
		w := httptest.NewRecorder()
		RequireCustomer(okHandler(&called)).ServeHTTP(w, r)

		if called {
			t.Error("handler called for anonymous request")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		customer *domain.Customer
		want     int
	}{
		{"admin", &domain.Customer{ID: testID(), AccountType: domain.AccountTypeAdmin}, http.StatusOK},
		{"customer", &domain.Customer{ID: testID(), AccountType: domain.AccountTypeCustomer}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			r := httptest.NewRequest("POST", "/admin/categories/", nil)
			if tt.customer != nil {
				r = withCustomer(r, tt.customer)
			}
			w := httptest.NewRecorder()
			RequireAdmin(okHandler(&called)).ServeHTTP(w, r)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if called != (tt.want == http.StatusOK) {
				t.Errorf("called = %v for status %d", called, tt.want)
			}
		})
	}
}
