// Package admin holds the catalog management handlers. All routes here sit
// behind RequireAdmin.
package admin

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodstore/internal/domain"
	"foodstore/internal/handler"
	"foodstore/internal/middleware"
	"foodstore/internal/storage"
)

// maxUploadSize bounds multipart form memory per request.
const maxUploadSize = 10 << 20 // 10 MiB

// CatalogHandler manages categories, subcategories, and products.
type CatalogHandler struct {
	catalog domain.CatalogService
	files   storage.Storage
}

// NewCatalogHandler creates a new admin catalog handler.
func NewCatalogHandler(catalog domain.CatalogService, files storage.Storage) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, files: files}
}

// storeImage persists one uploaded file under the given prefix and returns
// the stored path. A missing file is not an error; it returns "".
func (h *CatalogHandler) storeImage(r *http.Request, field, prefix string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", domain.Invalid("admin.upload", fmt.Sprintf("Invalid file for field '%s'", field))
	}
	defer file.Close()

	key := prefix + "/" + uuid.New().String() + strings.ToLower(path.Ext(header.Filename))
	return h.files.Put(r.Context(), key, file, contentType(header))
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// CreateCategory handles POST /admin/categories/
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.category.create", "Invalid multipart form"))
		return
	}

	name := r.FormValue("name")
	if name == "" {
		handler.ErrorResponse(w, r, domain.Invalid("admin.category.create", "Name is required"))
		return
	}

	image, err := h.storeImage(r, "image", "categories")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), domain.CreateCategoryParams{
		Name:  name,
		Image: image,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("category created", "category_id", category.ID.String(), "name", category.Name)
	handler.RespondJSON(w, http.StatusCreated, map[string]string{
		"id":    category.ID.String(),
		"name":  category.Name,
		"slug":  category.Slug,
		"image": category.Image,
	})
}

// CreateSubcategory handles POST /admin/subcategories/
func (h *CatalogHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.subcategory.create", "Invalid multipart form"))
		return
	}

	name := r.FormValue("name")
	categoryID := r.FormValue("category")
	if name == "" || categoryID == "" {
		handler.ErrorResponse(w, r, domain.Invalid("admin.subcategory.create", "Name and category are required"))
		return
	}

	image, err := h.storeImage(r, "image", "subcategories")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	subcategory, err := h.catalog.CreateSubcategory(r.Context(), domain.CreateSubcategoryParams{
		CategoryID: categoryID,
		Name:       name,
		Image:      image,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("subcategory created", "subcategory_id", subcategory.ID.String(), "name", subcategory.Name)
	handler.RespondJSON(w, http.StatusCreated, map[string]string{
		"id":       subcategory.ID.String(),
		"name":     subcategory.Name,
		"slug":     subcategory.Slug,
		"image":    subcategory.Image,
		"category": subcategory.CategoryID.String(),
	})
}

// CreateProduct handles POST /admin/products/
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.create", "Invalid multipart form"))
		return
	}

	name := r.FormValue("name")
	subcategoryID := r.FormValue("subcategory")
	priceStr := r.FormValue("price")
	if name == "" || subcategoryID == "" || priceStr == "" {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.create", "Name, subcategory, and price are required"))
		return
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.create", "Price must be a decimal number"))
		return
	}

	var images [3]string
	for i, field := range []string{"image_one", "image_two", "image_three"} {
		img, err := h.storeImage(r, field, "products")
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
		images[i] = img
	}

	product, err := h.catalog.CreateProduct(r.Context(), domain.CreateProductParams{
		SubcategoryID: subcategoryID,
		Name:          name,
		Price:         price,
		ImageOne:      images[0],
		ImageTwo:      images[1],
		ImageThree:    images[2],
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("product created", "product_id", product.ID.String(), "name", product.Name)
	handler.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          product.ID.String(),
		"name":        product.Name,
		"slug":        product.Slug,
		"price":       product.Price,
		"subcategory": product.SubcategoryID.String(),
		"images":      product.Images(),
	})
}

// DeleteCategory handles DELETE /admin/categories/{id}/
// Deleting a category cascades to its subcategories, their products, and any
// cart items holding those products; affected cart totals are refreshed.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSubcategory handles DELETE /admin/subcategories/{id}/
func (h *CatalogHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteSubcategory(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /admin/products/{id}/
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
