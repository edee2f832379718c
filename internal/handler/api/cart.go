package api

import (
	"net/http"

	"foodstore/internal/domain"
	"foodstore/internal/handler"
	"foodstore/internal/middleware"
	"foodstore/internal/telemetry"
)

// CartHandler serves the authenticated customer's cart and its line items.
// Routes carrying a {cart_id} segment are guarded by RequireCartOwner, so
// handlers can trust the cart reference.
type CartHandler struct {
	carts domain.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts domain.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// AddItemRequest is the POST /cart/{cart_id}/cart_item/ body.
// Count must be positive; zero or negative counts are rejected before the
// service is called (the service enforces this too).
type AddItemRequest struct {
	Product string `json:"product" validate:"required,uuid4"`
	Count   int32  `json:"count" validate:"required"`
}

// UpdateItemRequest is the PATCH /cart/{cart_id}/cart_item/{item_id} body.
// Count is a signed delta applied to the stored count.
type UpdateItemRequest struct {
	Count int32 `json:"count" validate:"required"`
}

// GetCart handles GET /cart/
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customer := middleware.GetCustomerFromContext(r.Context())
	if customer == nil {
		handler.ErrorResponse(w, r, domain.Unauthorized("cart.get", "Authentication required."))
		return
	}

	cart, err := h.carts.GetCartForCustomer(r.Context(), customer.ID.String())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, renderCart(NewRenderContext(r), cart))
}

// AddItem handles POST /cart/{cart_id}/cart_item/
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(r, "cart.add_item", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cartID := r.PathValue("cart_id")
	item, err := h.carts.AddItem(r.Context(), cartID, req.Product, req.Count)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	telemetry.RecordCartItemAdded(item.Price)
	handler.RespondJSON(w, http.StatusCreated, renderCartItem(item))
}

// UpdateItem handles PATCH /cart/{cart_id}/cart_item/{item_id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := decodeJSON(r, "cart.update_item", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cartID := r.PathValue("cart_id")
	itemID := r.PathValue("item_id")
	item, removed, err := h.carts.UpdateItem(r.Context(), cartID, itemID, req.Count)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if removed {
		telemetry.RecordCartItemRemoved()
		handler.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
		return
	}

	telemetry.RecordCartItemUpdated()
	handler.RespondJSON(w, http.StatusOK, renderCartItem(item))
}

// RemoveItem handles DELETE /cart/{cart_id}/cart_item/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := r.PathValue("cart_id")
	itemID := r.PathValue("item_id")

	if err := h.carts.RemoveItem(r.Context(), cartID, itemID); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	telemetry.RecordCartItemRemoved()
	w.WriteHeader(http.StatusNoContent)
}
