package app

import (
	"context"

	"github.com/jcmexdev/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	// Find returns one window of the products matching filter, ordered by
	// product_id, together with the total number of matches.
	Find(ctx context.Context, filter domain.Filter, limit, offset int) ([]domain.Product, int, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Upsert(ctx context.Context, products []domain.Product) (int, error)
}
