package routes

import (
	"foodstore/internal/middleware"
	"foodstore/internal/router"
)

// RegisterAPIRoutes registers the public catalog, cart, and auth routes.
//
// Catalog listings are public. The cart routes require a logged-in customer,
// and the item routes additionally require that the referenced cart belongs
// to that customer (404 for unknown carts, 403 for someone else's).
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	r.Get("/health", deps.HealthHandler.Health)

	r.Get("/categories/", deps.CatalogHandler.ListCategories)
	r.Get("/products/", deps.CatalogHandler.ListProducts)

	r.Post("/auth/register", deps.AuthHandler.Register)
	r.Post("/auth/login", deps.AuthHandler.Login)
	r.Post("/auth/logout", deps.AuthHandler.Logout)

	authed := r.Group(middleware.RequireCustomer)
	authed.Get("/cart/", deps.CartHandler.GetCart)

	owner := authed.Group(middleware.RequireCartOwner(deps.CartService))
	owner.Post("/cart/{cart_id}/cart_item/", deps.CartHandler.AddItem)
	owner.Patch("/cart/{cart_id}/cart_item/{item_id}", deps.CartHandler.UpdateItem)
	owner.Delete("/cart/{cart_id}/cart_item/{item_id}", deps.CartHandler.RemoveItem)
}
