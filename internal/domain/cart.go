package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Count must be greater than 0"}
	ErrDuplicateItem    = &Error{Code: EINVALID, Message: "Product is already in the cart; update its count instead"}
)

// CartService mediates all mutations to a cart's line items.
//
// Every mutation runs in a single transaction that ends with the cart's
// cached totals being recomputed from its remaining items, so a committed
// cart always satisfies:
//
//	total_price == sum(item.price) and total_count == sum(item.count)
//
// with empty-set sums persisted as literal zeros.
type CartService interface {
	// GetCartForCustomer returns the customer's cart with item details and
	// cached totals.
	GetCartForCustomer(ctx context.Context, customerID string) (*CartView, error)

	// GetCart returns a bare cart by ID. Used by the ownership guard.
	GetCart(ctx context.Context, cartID string) (*Cart, error)

	// AddItem creates a line item for a product not yet in the cart.
	// Fails with ErrDuplicateItem if the (cart, product) pair exists and
	// ErrInvalidQuantity if count <= 0. The item's price is locked in as
	// product.price * count at write time.
	AddItem(ctx context.Context, cartID, productID string, count int32) (*CartItem, error)

	// UpdateItem applies a count delta to an existing line item. The delta is
	// added to the stored count, not a replacement. A resulting count <= 0
	// deletes the item (removed reports true). Otherwise the item is
	// re-priced at the product's current price times the new count.
	UpdateItem(ctx context.Context, cartID, itemID string, delta int32) (item *CartItem, removed bool, err error)

	// RemoveItem deletes a line item.
	RemoveItem(ctx context.Context, cartID, itemID string) error
}

// Cart holds a customer's line items. TotalPrice and TotalCount are cached
// aggregates over the cart's items, maintained by CartService.
type Cart struct {
	ID         pgtype.UUID
	CustomerID pgtype.UUID
	TotalPrice decimal.Decimal
	TotalCount int32
}

// CartItem is one product entry in a cart. Price is product.price * count as
// of the last write, not live-recomputed from the current product price.
type CartItem struct {
	ID        pgtype.UUID
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Count     int32
	Price     decimal.Decimal
}

// CartItemDetail pairs a line item with the full product view.
type CartItemDetail struct {
	CartItem
	Product ProductDetail
}

// CartView is the cart read model: items with product details plus the
// cached totals.
type CartView struct {
	Cart
	Items []CartItemDetail
}
