package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"foodstore/internal/domain"
	"foodstore/internal/repository"
)

// refreshCartTotals recomputes a cart's cached total_price and total_count
// from its current items and persists them. It must be called on the same
// transaction's Querier as the item mutation that triggered it, so a reader
// never observes an item set whose aggregate is stale.
//
// The aggregate query COALESCEs empty-set sums to zero, so deleting the last
// item leaves the cart at 0/0 rather than NULL.
func refreshCartTotals(ctx context.Context, q repository.Querier, cartID pgtype.UUID) error {
	totals, err := q.GetCartTotals(ctx, cartID)
	if err != nil {
		return domain.Internal(err, "cart.refresh_totals", "failed to aggregate cart items")
	}

	err = q.UpdateCartTotals(ctx, repository.UpdateCartTotalsParams{
		ID:         cartID,
		TotalPrice: totals.TotalPrice,
		TotalCount: int32(totals.TotalCount),
	})
	if err != nil {
		return domain.Internal(err, "cart.refresh_totals", "failed to update cart totals")
	}

	return nil
}
