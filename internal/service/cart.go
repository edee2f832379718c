package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"foodstore/internal/domain"
	"foodstore/internal/repository"
)

// cartService implements domain.CartService over the SQL store. Every
// mutation runs in one transaction ending with refreshCartTotals, so the
// cart's cached aggregates commit together with the item change.
type cartService struct {
	store repository.Store
}

// Compile-time check that cartService implements domain.CartService.
var _ domain.CartService = (*cartService)(nil)

// NewCartService creates a new SQL-backed cart service.
func NewCartService(store repository.Store) domain.CartService {
	return &cartService{store: store}
}

// GetCart retrieves a bare cart by ID.
func (s *cartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cartUUID pgtype.UUID
	if err := cartUUID.Scan(cartID); err != nil {
		// A malformed ID identifies no cart.
		return nil, domain.ErrCartNotFound
	}

	cart, err := s.store.GetCartByID(ctx, cartUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.get", "failed to get cart")
	}

	return mapCart(cart), nil
}

// GetCartForCustomer retrieves the customer's cart with item details and
// cached totals.
func (s *cartService) GetCartForCustomer(ctx context.Context, customerID string) (*domain.CartView, error) {
	var customerUUID pgtype.UUID
	if err := customerUUID.Scan(customerID); err != nil {
		return nil, domain.ErrCartNotFound
	}

	cart, err := s.store.GetCartByCustomerID(ctx, customerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.get_for_customer", "failed to get cart")
	}

	rows, err := s.store.ListCartItemDetails(ctx, cart.ID)
	if err != nil {
		return nil, domain.Internal(err, "cart.get_for_customer", "failed to list cart items")
	}

	items := make([]domain.CartItemDetail, len(rows))
	for i, row := range rows {
		items[i] = domain.CartItemDetail{
			CartItem: *mapCartItem(row.CartItem),
			Product:  mapProductDetail(row.Product),
		}
	}

	return &domain.CartView{
		Cart:  *mapCart(cart),
		Items: items,
	}, nil
}

// AddItem creates a line item for a product not yet in the cart. The item's
// price is locked in as product.price * count at write time.
func (s *cartService) AddItem(ctx context.Context, cartID, productID string, count int32) (*domain.CartItem, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var cartUUID pgtype.UUID
	if err := cartUUID.Scan(cartID); err != nil {
		return nil, domain.ErrCartNotFound
	}

	var productUUID pgtype.UUID
	if err := productUUID.Scan(productID); err != nil {
		return nil, domain.ErrProductNotFound
	}

	var created *domain.CartItem
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetCartByID(ctx, cartUUID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCartNotFound
			}
			return domain.Internal(err, "cart.add_item", "failed to get cart")
		}

		_, err := q.GetCartItemByProduct(ctx, repository.GetCartItemByProductParams{
			CartID:    cartUUID,
			ProductID: productUUID,
		})
		if err == nil {
			return domain.ErrDuplicateItem
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.Internal(err, "cart.add_item", "failed to check for existing item")
		}

		product, err := q.GetProductByID(ctx, productUUID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrProductNotFound
			}
			return domain.Internal(err, "cart.add_item", "failed to get product")
		}

		price := repository.NumericToDecimal(product.Price).Mul(decimal.NewFromInt32(count))
		item, err := q.CreateCartItem(ctx, repository.CreateCartItemParams{
			CartID:    cartUUID,
			ProductID: productUUID,
			Count:     count,
			Price:     repository.DecimalToNumeric(price),
		})
		if err != nil {
			return domain.Internal(err, "cart.add_item", "failed to create cart item")
		}

		if err := refreshCartTotals(ctx, q, cartUUID); err != nil {
			return err
		}

		created = mapCartItem(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateItem applies a count delta to an existing line item. A resulting
// count <= 0 deletes the item; otherwise the item is re-priced at the
// product's current price times the new count.
func (s *cartService) UpdateItem(ctx context.Context, cartID, itemID string, delta int32) (*domain.CartItem, bool, error) {
	var cartUUID pgtype.UUID
	if err := cartUUID.Scan(cartID); err != nil {
		return nil, false, domain.ErrCartNotFound
	}

	var itemUUID pgtype.UUID
	if err := itemUUID.Scan(itemID); err != nil {
		return nil, false, domain.ErrCartItemNotFound
	}

	var (
		updated *domain.CartItem
		removed bool
	)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		item, err := q.GetCartItem(ctx, repository.GetCartItemParams{
			ID:     itemUUID,
			CartID: cartUUID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCartItemNotFound
			}
			return domain.Internal(err, "cart.update_item", "failed to get cart item")
		}

		newCount := item.Count + delta
		if newCount <= 0 {
			// A delta that zeroes or underflows the count removes the item
			// rather than leaving a non-positive quantity.
			if _, err := q.DeleteCartItem(ctx, repository.DeleteCartItemParams{
				ID:     itemUUID,
				CartID: cartUUID,
			}); err != nil {
				return domain.Internal(err, "cart.update_item", "failed to delete cart item")
			}
			removed = true
			return refreshCartTotals(ctx, q, cartUUID)
		}

		// Re-price at the product's current price, not the price locked in
		// when the item was added.
		product, err := q.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrProductNotFound
			}
			return domain.Internal(err, "cart.update_item", "failed to get product")
		}

		price := repository.NumericToDecimal(product.Price).Mul(decimal.NewFromInt32(newCount))
		row, err := q.UpdateCartItem(ctx, repository.UpdateCartItemParams{
			ID:    itemUUID,
			Count: newCount,
			Price: repository.DecimalToNumeric(price),
		})
		if err != nil {
			return domain.Internal(err, "cart.update_item", "failed to update cart item")
		}

		if err := refreshCartTotals(ctx, q, cartUUID); err != nil {
			return err
		}

		updated = mapCartItem(row)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return updated, removed, nil
}

// RemoveItem deletes a line item.
func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID string) error {
	var cartUUID pgtype.UUID
	if err := cartUUID.Scan(cartID); err != nil {
		return domain.ErrCartNotFound
	}

	var itemUUID pgtype.UUID
	if err := itemUUID.Scan(itemID); err != nil {
		return domain.ErrCartItemNotFound
	}

	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		deleted, err := q.DeleteCartItem(ctx, repository.DeleteCartItemParams{
			ID:     itemUUID,
			CartID: cartUUID,
		})
		if err != nil {
			return domain.Internal(err, "cart.remove_item", "failed to delete cart item")
		}
		if deleted == 0 {
			return domain.ErrCartItemNotFound
		}

		return refreshCartTotals(ctx, q, cartUUID)
	})
}

func mapCart(c repository.Cart) *domain.Cart {
	return &domain.Cart{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		TotalPrice: repository.NumericToDecimal(c.TotalPrice),
		TotalCount: c.TotalCount,
	}
}

func mapCartItem(i repository.CartItem) *domain.CartItem {
	return &domain.CartItem{
		ID:        i.ID,
		CartID:    i.CartID,
		ProductID: i.ProductID,
		Count:     i.Count,
		Price:     repository.NumericToDecimal(i.Price),
	}
}
