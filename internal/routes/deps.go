// Package routes wires handlers onto the router.
package routes

import (
	"foodstore/internal/domain"
	"foodstore/internal/handler/admin"
	"foodstore/internal/handler/api"
)

// APIDeps contains dependencies for the public JSON API routes.
type APIDeps struct {
	CatalogHandler *api.CatalogHandler
	CartHandler    *api.CartHandler
	AuthHandler    *api.AuthHandler
	HealthHandler  *api.HealthHandler

	// CartService backs the cart ownership guard on /cart/{cart_id}/ routes.
	CartService domain.CartService
}

// AdminDeps contains dependencies for the catalog management routes.
type AdminDeps struct {
	CatalogHandler *admin.CatalogHandler
}
