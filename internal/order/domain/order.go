package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one placed line item. Orders are never modified after creation.
type Order struct {
	ID             int64
	BatchID        string
	IdempotencyKey string
	Username       string
	ProductID      int64
	Image          string
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       int
	TotalPrice     decimal.Decimal
	PaymentMethod  string
	Address        string
	City           string
	CreatedAt      time.Time
}

// PlaceOrderItem is one cart line the client asks to turn into an order.
// Fields are stored as sent.
type PlaceOrderItem struct {
	Username      string
	ProductID     int64
	Image         string
	Name          string
	UnitPrice     decimal.Decimal
	Quantity      int
	TotalPrice    decimal.Decimal
	PaymentMethod string
	Address       string
	City          string
}

// Placement is the result of one PlaceOrder call. Replayed is set when the
// result was returned for a repeated idempotency key.
type Placement struct {
	BatchID  string
	Username string
	Orders   []Order
	Replayed bool
}
