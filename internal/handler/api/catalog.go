package api

import (
	"net/http"

	"foodstore/internal/domain"
	"foodstore/internal/handler"
	"foodstore/internal/telemetry"
)

// CatalogHandler serves the public catalog listings.
type CatalogHandler struct {
	catalog domain.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog domain.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories handles GET /categories/
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	telemetry.RecordCategoryListView()
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rc := NewRenderContext(r)
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, renderCategory(rc, c))
	}

	handler.RespondJSON(w, http.StatusOK, views)
}

// ListProducts handles GET /products/
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	telemetry.RecordProductListView()
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rc := NewRenderContext(r)
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, renderProduct(rc, p))
	}

	handler.RespondJSON(w, http.StatusOK, views)
}
