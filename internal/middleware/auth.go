package middleware

import (
	"context"
	"net/http"

	"foodstore/internal/cookie"
	"foodstore/internal/domain"
)

const (
	// CustomerContextKey is the context key for storing the authenticated customer
	CustomerContextKey contextKey = "customer"

	// SessionCookieName is the login session cookie.
	SessionCookieName = "foodstore_session"
)

// WithCustomer extracts the customer from the session cookie and adds it to
// the request context. This middleware is optional - it adds the customer if
// present but doesn't require authentication.
func WithCustomer(customers domain.CustomerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.Get(r, SessionCookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			customer, err := customers.GetCustomerBySessionToken(r.Context(), token)
			if err != nil {
				// Invalid or expired session, continue without customer
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CustomerContextKey, customer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCustomer ensures the request is authenticated, responding 401 if not.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetCustomerFromContext(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the authenticated customer is an admin, responding
// 401/403 otherwise.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customer := GetCustomerFromContext(r.Context())
		if customer == nil {
			respondUnauthorized(w, r)
			return
		}

		if !customer.IsAdmin() {
			respondForbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetCustomerFromContext retrieves the customer from the request context.
// Returns nil if no customer is authenticated.
func GetCustomerFromContext(ctx context.Context) *domain.Customer {
	customer, ok := ctx.Value(CustomerContextKey).(*domain.Customer)
	if !ok {
		return nil
	}
	return customer
}
