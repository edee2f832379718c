package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"foodstore/internal/domain"
)

// RenderContext carries the request-derived values views need, currently
// just the base URL used to turn stored image paths into absolute URLs.
type RenderContext struct {
	BaseURL string
}

// NewRenderContext builds a render context from the inbound request's
// scheme and host, honoring X-Forwarded-Proto when set by a proxy.
func NewRenderContext(r *http.Request) RenderContext {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return RenderContext{BaseURL: scheme + "://" + r.Host}
}

// AbsoluteURL composes an absolute URL for a stored image path.
// Empty paths stay empty so views can distinguish "no image".
func (rc RenderContext) AbsoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return rc.BaseURL + "/" + strings.TrimPrefix(path, "/")
}

// SubcategoryView is the subcategory entry nested in category listings.
type SubcategoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// CategoryView is one entry of the category listing.
type CategoryView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Image         string            `json:"image"`
	Subcategories []SubcategoryView `json:"subcategories"`
}

// ProductView is one entry of the product listing, also embedded in cart
// item views. Images are absolute URLs.
type ProductView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
}

// CartItemView is a cart line item with its product resolved.
type CartItemView struct {
	ID      string          `json:"id"`
	Product ProductView     `json:"product"`
	Count   int32           `json:"count"`
	Price   decimal.Decimal `json:"price"`
}

// CartResponse is the full cart read model.
type CartResponse struct {
	ID         string          `json:"id"`
	Items      []CartItemView  `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	TotalCount int32           `json:"total_count"`
}

// CartItemResponse is the shape returned by item mutations, where only the
// product reference is known.
type CartItemResponse struct {
	ID      string          `json:"id"`
	Product string          `json:"product"`
	Count   int32           `json:"count"`
	Price   decimal.Decimal `json:"price"`
}

// CustomerResponse is the account shape returned by auth endpoints.
type CustomerResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func renderCategory(rc RenderContext, c domain.CategoryWithSubcategories) CategoryView {
	subs := make([]SubcategoryView, 0, len(c.Subcategories))
	for _, s := range c.Subcategories {
		subs = append(subs, SubcategoryView{
			ID:    s.ID.String(),
			Name:  s.Name,
			Slug:  s.Slug,
			Image: rc.AbsoluteURL(s.Image),
		})
	}
	return CategoryView{
		ID:            c.ID.String(),
		Name:          c.Name,
		Slug:          c.Slug,
		Image:         rc.AbsoluteURL(c.Image),
		Subcategories: subs,
	}
}

func renderProduct(rc RenderContext, p domain.ProductDetail) ProductView {
	images := make([]string, 0, 3)
	for _, img := range p.Images() {
		images = append(images, rc.AbsoluteURL(img))
	}
	return ProductView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Category:    p.CategoryName,
		Subcategory: p.SubcategoryName,
		Price:       p.Price,
		Images:      images,
	}
}

func renderCart(rc RenderContext, cart *domain.CartView) CartResponse {
	items := make([]CartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemView{
			ID:      item.ID.String(),
			Product: renderProduct(rc, item.Product),
			Count:   item.Count,
			Price:   item.Price,
		})
	}
	return CartResponse{
		ID:         cart.ID.String(),
		Items:      items,
		TotalPrice: cart.TotalPrice,
		TotalCount: cart.TotalCount,
	}
}

func renderCartItem(item *domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:      item.ID.String(),
		Product: item.ProductID.String(),
		Count:   item.Count,
		Price:   item.Price,
	}
}

func renderCustomer(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}
