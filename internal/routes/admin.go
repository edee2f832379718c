package routes

import (
	"foodstore/internal/middleware"
	"foodstore/internal/router"
)

// RegisterAdminRoutes registers the catalog management routes.
// All routes are protected by the admin authentication middleware.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	admin := r.Group(middleware.RequireAdmin)

	admin.Post("/admin/categories/", deps.CatalogHandler.CreateCategory)
	admin.Delete("/admin/categories/{id}/", deps.CatalogHandler.DeleteCategory)

	admin.Post("/admin/subcategories/", deps.CatalogHandler.CreateSubcategory)
	admin.Delete("/admin/subcategories/{id}/", deps.CatalogHandler.DeleteSubcategory)

	admin.Post("/admin/products/", deps.CatalogHandler.CreateProduct)
	admin.Delete("/admin/products/{id}/", deps.CatalogHandler.DeleteProduct)
}
