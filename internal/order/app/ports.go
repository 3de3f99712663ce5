package app

import (
	"context"

	"github.com/jcmexdev/storefront/internal/order/domain"
)

// PlaceParams is one placement written by OrderRepo.Place.
type PlaceParams struct {
	BatchID        string
	IdempotencyKey string
	Items          []domain.PlaceOrderItem
}

type OrderRepo interface {
	// Place inserts one order per item and consumes the matching cart rows
	// in one transaction. It fails with domain.ErrCartItemMissing when any
	// item has no cart row, leaving nothing written.
	Place(ctx context.Context, params PlaceParams) ([]domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, username, key string) ([]domain.Order, error)
	ListByUser(ctx context.Context, username string) ([]domain.Order, error)
}
