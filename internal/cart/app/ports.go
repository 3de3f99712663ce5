package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/cart/domain"
)

// Adjustment moves the quantity of every row of (Username, ProductID) by
// Delta. When UnitPrice is valid it must equal each row's snapshot price.
type Adjustment struct {
	Username  string
	ProductID int64
	Delta     int
	UnitPrice decimal.NullDecimal
}

type CartRepo interface {
	Insert(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	Adjust(ctx context.Context, adj Adjustment) ([]domain.CartItem, error)
	Remove(ctx context.Context, username string, productID int64) (int64, error)
	List(ctx context.Context, username string) ([]domain.CartItem, error)
}
