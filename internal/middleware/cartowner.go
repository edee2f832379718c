package middleware

import (
	"net/http"

	"foodstore/internal/domain"
)

// RequireCartOwner guards cart-item routes scoped under /cart/{cart_id}/.
// It resolves the cart named in the path and permits the request only when
// the authenticated customer owns it: 404 when no such cart exists, 403 when
// it belongs to someone else. Place it after RequireCustomer.
func RequireCartOwner(carts domain.CartService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customer := GetCustomerFromContext(r.Context())
			if customer == nil {
				respondUnauthorized(w, r)
				return
			}

			cartID := r.PathValue("cart_id")
			cart, err := carts.GetCart(r.Context(), cartID)
			if err != nil {
				respondWithError(w, r, err)
				return
			}

			if cart.CustomerID != customer.ID {
				respondForbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
