package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a user's cart. UnitPrice is the price seen when
// the item was added and TotalPrice stays UnitPrice × Quantity.
type CartItem struct {
	ID         int64
	Username   string
	ProductID  int64
	Image      string
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// Direction is the sign of a quantity adjustment.
type Direction int

const (
	Increment Direction = 1
	Decrement Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	default:
		return "unknown"
	}
}

// Valid reports whether d is Increment or Decrement.
func (d Direction) Valid() bool {
	return d == Increment || d == Decrement
}
